package feast

import (
	"testing"
	"time"
)

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		endpoint string
		wantHost string
		wantPort int
	}{
		{"localhost:6565", "localhost", 6565},
		{"grpc://localhost:6565", "localhost", 6565},
		{"feast.example.com:6565", "feast.example.com", 6565},
		{"localhost", "localhost", 0},
		{"localhost:notaport", "localhost:notaport", 0},
	}

	for _, tt := range tests {
		host, port := parseEndpoint(tt.endpoint)
		if host != tt.wantHost || port != tt.wantPort {
			t.Errorf("parseEndpoint(%q) = (%q, %d), want (%q, %d)",
				tt.endpoint, host, port, tt.wantHost, tt.wantPort)
		}
	}
}

func TestFromSDKValue(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  interface{}
	}{
		{"nil", nil, nil},
		{"string", "action", "action"},
		{"int64", int64(7), float64(7)},
		{"int32", int32(3), float64(3)},
		{"float64", 0.85, 0.85},
		{"float32", float32(0.5), float64(0.5)},
		{"bool true", true, float64(1)},
		{"bool false", false, float64(0)},
		{"bytes", []byte("drama"), "drama"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fromSDKValue(tt.input)
			if got != tt.want {
				t.Errorf("fromSDKValue(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestClientOptions(t *testing.T) {
	config := &ClientConfig{}

	WithTimeout(10 * time.Second)(config)
	if config.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", config.Timeout)
	}

	WithAuth(&AuthConfig{Type: "static", Token: "secret"})(config)
	if config.Auth == nil || config.Auth.Token != "secret" {
		t.Errorf("Auth not applied: %+v", config.Auth)
	}
}

// TestGrpcClientIntegration 需要真实的 Feast 服务，默认跳过。
func TestGrpcClientIntegration(t *testing.T) {
	t.Skip("需要运行中的 Feast Feature Server（localhost:6565）")
}
