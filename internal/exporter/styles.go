package exporter

// printCSS 打印样式表，逐元素类型定义导出外观。
// 表格与代码块禁止跨页截断，标题后禁止分页。
const printCSS = `
body {
  margin: 0;
  background: white;
}
.print-root {
  width: 800px;
  background: white;
  padding: 60px;
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif;
  font-size: 14px;
  line-height: 1.6;
  color: #1f2d3d;
}
.print-root h1 {
  display: block;
  font-size: 28px;
  color: #336F51;
  border-bottom: 3px solid #336F51;
  padding-bottom: 12px;
  margin: 30px 0 20px 0;
  font-weight: 700;
  page-break-after: avoid;
}
.print-root h2 {
  display: block;
  font-size: 22px;
  color: #1f2d3d;
  margin: 25px 0 15px 0;
  font-weight: 600;
  border-left: 4px solid #336F51;
  padding-left: 12px;
  page-break-after: avoid;
}
.print-root h3 {
  display: block;
  font-size: 18px;
  color: #1f2d3d;
  margin: 20px 0 12px 0;
  font-weight: 600;
  page-break-after: avoid;
}
.print-root p {
  display: block;
  margin: 0 0 16px 0;
  text-align: justify;
  line-height: 1.6;
}
.print-root strong {
  color: #336F51;
  font-weight: 600;
}
.print-root ul, .print-root ol {
  display: block;
  margin: 16px 0;
  padding-left: 24px;
}
.print-root li {
  margin-bottom: 8px;
  line-height: 1.6;
}
.print-root table {
  display: table;
  width: 100%;
  border-collapse: collapse;
  margin: 20px 0;
  font-size: 14px;
  page-break-inside: avoid;
}
.print-root th {
  background-color: #f8f9fb;
  border: 1px solid #e0e5ea;
  padding: 12px 8px;
  text-align: left;
  font-weight: 600;
}
.print-root td {
  border: 1px solid #e0e5ea;
  padding: 10px 8px;
  text-align: left;
}
.print-root tr:nth-child(even) {
  background-color: #fafbfc;
}
.print-root code {
  font-family: 'Courier New', Courier, monospace;
  background: #f5f5f5;
  padding: 2px 6px;
  border-radius: 3px;
  font-size: 13px;
}
.print-root pre {
  display: block;
  background: #f5f5f5;
  padding: 16px;
  border-radius: 6px;
  overflow-x: auto;
  margin: 16px 0;
  page-break-inside: avoid;
}
.page-break {
  page-break-before: always;
}
`
