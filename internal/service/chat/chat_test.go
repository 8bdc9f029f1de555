// Package chat 聊天服务
package chat

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// ========== truncateTitle 测试 ==========

func TestTruncateTitle(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		wantRunes int
	}{
		{name: "empty", title: "", wantRunes: 0},
		{name: "short ascii", title: "hello", wantRunes: 5},
		{name: "exactly at limit", title: strings.Repeat("a", 100), wantRunes: 100},
		{name: "long ascii", title: strings.Repeat("a", 150), wantRunes: 100},
		{name: "long cjk", title: strings.Repeat("你好世界", 40), wantRunes: 100},
		{name: "mixed multibyte", title: strings.Repeat("héllo你", 30), wantRunes: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateTitle(tt.title)
			if n := utf8.RuneCountInString(got); n != tt.wantRunes {
				t.Errorf("truncateTitle() rune count = %d, want %d", n, tt.wantRunes)
			}
			// 截断不得产生非法 UTF-8
			if !utf8.ValidString(got) {
				t.Errorf("truncateTitle() produced invalid UTF-8: %q", got)
			}
			if !strings.HasPrefix(tt.title, got) {
				t.Errorf("truncateTitle() = %q, not a prefix of input", got)
			}
		})
	}
}
