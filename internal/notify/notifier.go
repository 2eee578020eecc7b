package notify

import (
	"lexchange/internal/consts"
	"lexchange/pkg/logger"
)

// 通知槽。交易/登陆等操作的结果从这里递给用户，fire-and-forget，
// 没有回执也没有重试

type Notifier interface {
	Notify(message string, severity consts.Severity)
}

// LogNotifier 把通知打进日志，没有前端连接时的兜底实现
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(message string, severity consts.Severity) {
	switch severity {
	case consts.SeverityError:
		logger.Warn("[notify] " + message)
	default:
		logger.Info("[notify] " + message)
	}
}

// MultiNotifier 同一条通知发给多个下游
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(message string, severity consts.Severity) {
	for _, n := range m {
		n.Notify(message, severity)
	}
}
