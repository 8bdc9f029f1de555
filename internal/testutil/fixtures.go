// Package testutil 提供测试辅助工具
package testutil

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kamesh6592-cell/zola/internal/model"
)

// CanceledContext 返回已取消的 context
func CanceledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

// NewAuthUser 创建已认证用户的测试数据
func NewAuthUser(id string) *model.User {
	return &model.User{
		ID:          id,
		Email:       id + "@example.com",
		DisplayName: "Test User",
		Anonymous:   false,
	}
}

// WithDailyCounts 设置用户当日用量与重置时间
func WithDailyCounts(u *model.User, count, proCount int, resetAt time.Time) *model.User {
	u.DailyMessageCount = count
	u.DailyProMessageCount = proCount
	u.DailyReset = &resetAt
	return u
}

// AssertHelper 提供断言相关的测试辅助
type AssertHelper struct {
	t *testing.T
}

// NewAssertHelper 创建断言辅助器
func NewAssertHelper(t *testing.T) *AssertHelper {
	return &AssertHelper{t: t}
}

// NoError 断言没有错误
func (h *AssertHelper) NoError(err error, msgAndArgs ...interface{}) {
	h.t.Helper()
	if err != nil {
		h.t.Fatalf("Unexpected error: %v %v", err, msgAndArgs)
	}
}

// Error 断言有错误
func (h *AssertHelper) Error(err error, msgAndArgs ...interface{}) {
	h.t.Helper()
	if err == nil {
		h.t.Fatal("Expected error, got nil")
	}
}

// ErrorIs 断言错误链中包含指定的哨兵错误
func (h *AssertHelper) ErrorIs(err, target error, msgAndArgs ...interface{}) {
	h.t.Helper()
	if !errors.Is(err, target) {
		h.t.Fatalf("Expected error %v, got %v %v", target, err, msgAndArgs)
	}
}

// ErrorContains 断言错误包含指定字符串
func (h *AssertHelper) ErrorContains(err error, substr string, msgAndArgs ...interface{}) {
	h.t.Helper()
	if err == nil {
		h.t.Fatal("Expected error, got nil")
	}
	if !strings.Contains(err.Error(), substr) {
		h.t.Fatalf("Error %q does not contain %q %v", err.Error(), substr, msgAndArgs)
	}
}

// Equal 断言相等
func (h *AssertHelper) Equal(expected, actual interface{}, msgAndArgs ...interface{}) {
	h.t.Helper()
	if expected != actual {
		h.t.Fatalf("Expected %v, got %v %v", expected, actual, msgAndArgs)
	}
}

// NotEmpty 断言字符串非空
func (h *AssertHelper) NotEmpty(v string, msgAndArgs ...interface{}) {
	h.t.Helper()
	if v == "" {
		h.t.Fatalf("Expected non-empty string %v", msgAndArgs)
	}
}

// True 断言为真
func (h *AssertHelper) True(condition bool, msgAndArgs ...interface{}) {
	h.t.Helper()
	if !condition {
		h.t.Fatalf("Expected true, got false %v", msgAndArgs)
	}
}

// False 断言为假
func (h *AssertHelper) False(condition bool, msgAndArgs ...interface{}) {
	h.t.Helper()
	if condition {
		h.t.Fatalf("Expected false, got true %v", msgAndArgs)
	}
}
