package ws

import (
	"encoding/json"
	"testing"

	"github.com/mmuslimabdulj/likechat/internal/domain"
)

func TestDecodePayload(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"Valid", `{"nickname":"Alice"}`, "Alice", false},
		{"Empty", ``, "", true},
		{"Null", `null`, "", true},
		{"Wrong type", `{"nickname":42}`, "", true},
		{"Not an object", `"Alice"`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p domain.JoinPayload
			err := decodePayload(json.RawMessage(tt.raw), &p)
			if (err != nil) != tt.wantErr {
				t.Fatalf("decodePayload(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if p.Nickname != tt.want {
				t.Errorf("Expected nickname %q, got %q", tt.want, p.Nickname)
			}
		})
	}
}
