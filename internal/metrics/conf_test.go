package metrics

import (
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
)

func TestConfigDefaults(t *testing.T) {
	tests := map[string]struct {
		in   string
		want Config
	}{
		"empty": {
			in:   "{}",
			want: Config{Log: true, BindAddress: "127.0.0.1", Port: 9090},
		},
		"override": {
			in:   "log: false\nport: 9100\n",
			want: Config{Log: false, BindAddress: "127.0.0.1", Port: 9100},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var got Config
			if err := yaml.Unmarshal([]byte(tc.in), &got); err != nil {
				t.Fatalf("error unmarshalling: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
