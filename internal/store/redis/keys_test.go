package redis

import "testing"

func TestHitsKey(t *testing.T) {
	tests := []struct {
		mount string
		want  string
	}{
		{mount: "/foobar", want: "assetd:hits:/foobar"},
		{mount: "/a/b", want: "assetd:hits:/a/b"},
		{mount: "", want: "assetd:hits:/"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := HitsKey(tt.mount); got != tt.want {
				t.Errorf("HitsKey(%q) = %q, want %q", tt.mount, got, tt.want)
			}
		})
	}
}
