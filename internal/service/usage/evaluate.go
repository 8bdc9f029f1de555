package usage

import "context"

// Advisory 面向用户的提示信号，永远不构成拒绝
type Advisory string

const (
	// AdvisoryLowQuota 标准配额余量到达提醒阈值（仅登录用户）
	AdvisoryLowQuota Advisory = "low_quota"
	// AdvisoryLowQuotaPro pro 配额余量到达提醒阈值
	AdvisoryLowQuotaPro Advisory = "low_quota_pro"
	// AdvisoryLoginReminder 游客每发满 5 条消息提示登录
	AdvisoryLoginReminder Advisory = "login_reminder"
)

// Sink 提示信号的接收方，由外层负责展示
type Sink interface {
	Notify(ctx context.Context, advisory Advisory)
}

// Limits 配额判定所用的限额
type Limits struct {
	DailyLimit     int
	DailyLimitPro  int
	AlertThreshold int
}

// Input 配额判定的输入条件
type Input struct {
	Authenticated bool
	ProModel      bool
}

// Decision 单次发送的配额判定结果，每次请求重新计算，从不持久化
type Decision struct {
	Allowed      bool
	Remaining    int
	RemainingPro int
	Count        int
	// Soft 为真时拒绝是建议性的：游客超限应引导登录而非硬性报错
	Soft       bool
	Advisories []Advisory
}

// Evaluate 纯函数：由用量窗口和限额得出判定
// pro 子配额耗尽只拦截 pro 模型的发送，不影响标准发送
func Evaluate(window Window, limits Limits, in Input) Decision {
	remaining := limits.DailyLimit - window.DailyCount
	if remaining < 0 {
		remaining = 0
	}
	remainingPro := limits.DailyLimitPro - window.DailyProCount
	if remainingPro < 0 {
		remainingPro = 0
	}

	allowed := remaining > 0
	if in.ProModel && remainingPro == 0 {
		allowed = false
	}

	d := Decision{
		Allowed:      allowed,
		Remaining:    remaining,
		RemainingPro: remainingPro,
		Count:        window.DailyCount,
		Soft:         !allowed && !in.Authenticated,
	}

	if in.Authenticated && remaining == limits.AlertThreshold {
		d.Advisories = append(d.Advisories, AdvisoryLowQuota)
	}
	if remainingPro == limits.AlertThreshold {
		d.Advisories = append(d.Advisories, AdvisoryLowQuotaPro)
	}
	if !in.Authenticated && window.DailyCount > 0 && window.DailyCount%5 == 0 {
		d.Advisories = append(d.Advisories, AdvisoryLoginReminder)
	}

	return d
}
