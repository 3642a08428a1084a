package repositories

import "testing"

func TestAuditFilterPage(t *testing.T) {
	tests := []struct {
		name       string
		filter     AuditFilter
		wantLimit  int
		wantOffset int
	}{
		{"defaults", AuditFilter{}, 50, 0},
		{"explicit", AuditFilter{Limit: 10, Offset: 20}, 10, 20},
		{"clamped limit", AuditFilter{Limit: 5000}, 200, 0},
		{"negative values", AuditFilter{Limit: -1, Offset: -5}, 50, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := tt.filter.page()
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Fatalf("page() = %d, %d, want %d, %d", limit, offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}
