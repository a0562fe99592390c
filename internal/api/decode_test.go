package api

import (
	"errors"
	"testing"
)

func TestDecodeList_FallbackOrder(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    int
	}{
		{"bare array", `[{"name":"a"},{"name":"b"}]`, 2},
		{"data array", `{"success":true,"data":[{"name":"a"}]}`, 1},
		{"resource key", `{"products":[{"name":"a"},{"name":"b"},{"name":"c"}]}`, 3},
		{"nested under data", `{"data":{"products":[{"name":"a"}]}}`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out []Product
			if err := decodeList([]byte(tt.payload), "products", &out); err != nil {
				t.Fatalf("decodeList: %v", err)
			}
			if len(out) != tt.want {
				t.Errorf("got %d items, want %d", len(out), tt.want)
			}
		})
	}
}

// When both the data envelope and the resource key hold arrays, the data
// envelope wins; the order is a contract, not an accident.
func TestDecodeList_DataBeatsResourceKey(t *testing.T) {
	payload := `{"data":[{"name":"from-data"}],"products":[{"name":"x"},{"name":"y"}]}`
	var out []Product
	if err := decodeList([]byte(payload), "products", &out); err != nil {
		t.Fatalf("decodeList: %v", err)
	}
	if len(out) != 1 || out[0].Name != "from-data" {
		t.Errorf("data envelope should win, got %+v", out)
	}
}

func TestDecodeList_NoMatch(t *testing.T) {
	var out []Product
	err := decodeList([]byte(`{"success":true}`), "products", &out)
	if !errors.Is(err, ErrNoPayload) {
		t.Errorf("want ErrNoPayload, got %v", err)
	}
	if err := decodeList([]byte(`not json`), "products", &out); !errors.Is(err, ErrNoPayload) {
		t.Errorf("invalid json: want ErrNoPayload, got %v", err)
	}
}

func TestDecodeObject_FallbackOrder(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"data envelope", `{"data":{"name":"ring"}}`, "ring"},
		{"data wraps resource key", `{"data":{"product":{"name":"chain"}}}`, "chain"},
		{"resource key", `{"product":{"name":"bangle"}}`, "bangle"},
		{"bare object", `{"name":"pendant"}`, "pendant"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Product
			if err := decodeObject([]byte(tt.payload), "product", &p); err != nil {
				t.Fatalf("decodeObject: %v", err)
			}
			if p.Name != tt.want {
				t.Errorf("name = %q, want %q", p.Name, tt.want)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"nested error message", `{"error":{"code":"bad","message":"nested msg"}}`, "nested msg"},
		{"string error", `{"error":"flat msg"}`, "flat msg"},
		{"message key", `{"message":"top msg"}`, "top msg"},
		{"nested beats message", `{"error":{"message":"nested"},"message":"top"}`, "nested"},
		{"nothing usable", `{"success":false}`, ""},
		{"not json", `oops`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorMessage([]byte(tt.payload)); got != tt.want {
				t.Errorf("errorMessage = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeLogin_FallbackOrder(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantToken string
		wantAdmin bool
	}{
		{"token under data", `{"success":true,"data":{"token":"tok-data","admin":{"name":"A","email":"a@b.co"}}}`, "tok-data", true},
		{"top-level token", `{"token":"tok-top"}`, "tok-top", false},
		{"token under data.data", `{"data":{"data":{"token":"tok-deep"}}}`, "tok-deep", false},
		{"data level beats top level", `{"token":"tok-top","data":{"token":"tok-data"}}`, "tok-data", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := decodeLogin([]byte(tt.payload))
			if err != nil {
				t.Fatalf("decodeLogin: %v", err)
			}
			if res.Token != tt.wantToken {
				t.Errorf("token = %q, want %q", res.Token, tt.wantToken)
			}
			if (res.Admin != nil) != tt.wantAdmin {
				t.Errorf("admin present = %v, want %v", res.Admin != nil, tt.wantAdmin)
			}
		})
	}
}

func TestDecodeLogin_NoToken(t *testing.T) {
	if _, err := decodeLogin([]byte(`{"success":true,"data":{}}`)); !errors.Is(err, ErrNoPayload) {
		t.Errorf("want ErrNoPayload, got %v", err)
	}
	if _, err := decodeLogin([]byte(`{"data":{"token":""}}`)); !errors.Is(err, ErrNoPayload) {
		t.Errorf("empty token: want ErrNoPayload, got %v", err)
	}
}
