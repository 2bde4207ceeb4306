package logger

import (
	"strings"
	"testing"
)

func TestMaskToken(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"空字符串", "", ""},
		{"短secret(<8字符)", "abc", "***"},
		{"7字符", "1234567", "***"},
		{"正好8字符", "12345678", "12345678"},
		{"Cloudinary api_key(15位)", "123456789012345", "1234*******2345"},
		{"Cloudinary api_secret(27字符)", "a1B2c3D4e5F6g7H8i9J0k1L2m3N", "a1B2" + strings.Repeat("*", 19) + "2m3N"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaskToken(tt.input)
			if got != tt.want {
				t.Errorf("MaskToken() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSanitizeValue(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value interface{}
		want  interface{}
	}{
		{"普通字段不脱敏", "cloud_name", "demo-cloud", "demo-cloud"},
		{"api_key脱敏", "api_key", "123456789012345", "1234*******2345"},
		{"api_secret脱敏", "api_secret", "abcdefghijkl", "abcd****ijkl"},
		{"redis密码脱敏", "redis_password", "p@ssw0rd!!", "p@ss**rd!!"},
		{"大小写不敏感", "API_SECRET", "abcdefghijkl", "abcd****ijkl"},
		{"非字符串值脱敏", "secret", 12345, "***MASKED***"},
		{"短值脱敏", "pwd", "123", "***"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeValue(tt.key, tt.value)
			if got != tt.want {
				t.Errorf("SanitizeValue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSanitizeArgs(t *testing.T) {
	tests := []struct {
		name string
		args []any
		want []any
	}{
		{
			name: "空参数",
			args: []any{},
			want: []any{},
		},
		{
			name: "无敏感信息",
			args: []any{"namespace", "CloudinaryTypes", "key", "all"},
			want: []any{"namespace", "CloudinaryTypes", "key", "all"},
		},
		{
			name: "混合敏感和非敏感",
			args: []any{
				"cloud_name", "demo",
				"api_key", "123456789012345",
				"root_folder", "everything-enterprise",
			},
			want: []any{
				"cloud_name", "demo",
				"api_key", "1234*******2345",
				"root_folder", "everything-enterprise",
			},
		},
		{
			name: "奇数参数(最后一个key无value)",
			args: []any{"key", "all", "api_secret"},
			want: []any{"key", "all", "api_secret"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeArgs(tt.args...)
			if len(got) != len(tt.want) {
				t.Errorf("SanitizeArgs() length = %v, want %v", len(got), len(tt.want))
				return
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("SanitizeArgs()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestIsSensitiveKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"api_key", true},
		{"api_secret", true},
		{"redis_password", true},
		{"Authorization", true},
		{"cloud_name", false},
		{"cursor", false},
		{"namespace", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := IsSensitiveKey(tt.key); got != tt.want {
				t.Errorf("IsSensitiveKey(%s) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func BenchmarkSanitizeArgs(b *testing.B) {
	args := []any{
		"namespace", "CloudinaryImages",
		"api_key", "123456789012345",
		"key", "portraits/",
		"api_secret", "a1B2c3D4e5F6g7H8i9J0k1L2m3N",
	}
	for i := 0; i < b.N; i++ {
		SanitizeArgs(args...)
	}
}
