package research

// QuestionRequest 针对当前打开文档的提问请求
type QuestionRequest struct {
	DocumentID          string `json:"document_id"`
	Question            string `json:"question"`
	ConversationHistory string `json:"conversation_history"`
}

// QuestionTicket 提问受理结果，指向后端的异步工作流
type QuestionTicket struct {
	WorkflowID string `json:"workflowId"`
	RunID      string `json:"runId"`
}

// StreamEvent 流式通道下发的事件
// answer 事件携带回答内容；complete/error 为终止事件
type StreamEvent struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
}

const (
	EventAnswer   = "answer"
	EventComplete = "complete"
	EventError    = "error"
)

// StreamHandlers 流事件回调。OnComplete 与 OnError 互斥，至多触发一次。
// 取消后不再触发任何回调。
type StreamHandlers struct {
	OnEvent    func(StreamEvent)
	OnComplete func()
	OnError    func(error)
}

// ResearchRequest 追加研究（follow-up）提交请求
type ResearchRequest struct {
	Context          string            `json:"context"`
	Modifiers        map[string]string `json:"modifiers"`
	ParentDocumentID string            `json:"parent_document_id"`
}
