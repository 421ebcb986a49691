package eventbus

type ViewerEventType string

const (
	ViewerEventDocOpened      ViewerEventType = "DocOpened"
	ViewerEventDocClosed      ViewerEventType = "DocClosed"
	ViewerEventAnswerReceived ViewerEventType = "AnswerReceived"
	ViewerEventExportFinished ViewerEventType = "ExportFinished"
)

type ViewerEvent struct {
	Type      ViewerEventType
	DocUID    string
	Title     string
	Detail    string
	Succeeded bool
}

type ViewerEventHandler = Handler[ViewerEvent]
type ViewerEventBus = Bus[ViewerEventType, ViewerEvent]

func NewViewerEventBus() *ViewerEventBus {
	return NewBus[ViewerEventType, ViewerEvent]()
}
