package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/littlelemon-next/internal/constants"
)

func TestOrderMarshalIncludesLegacyStatusCode(t *testing.T) {
	cases := []struct {
		status string
		want   string
	}{
		{status: constants.OrderStatusOutForDelivery, want: `"status_code":0`},
		{status: constants.OrderStatusDelivered, want: `"status_code":1`},
	}
	for _, tc := range cases {
		body, err := json.Marshal(Order{ID: 7, Status: tc.status})
		if err != nil {
			t.Fatalf("marshal order failed: %v", err)
		}
		if !strings.Contains(string(body), tc.want) {
			t.Fatalf("order json should contain %s, got %s", tc.want, body)
		}
		if !strings.Contains(string(body), `"status":"`+tc.status+`"`) {
			t.Fatalf("order json should keep string status, got %s", body)
		}
	}
}
