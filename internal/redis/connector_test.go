package redis

import (
	"context"
	"testing"
	"time"

	"github.com/MrSnakeDoc/assetd/internal/logger"
)

func TestNextWait(t *testing.T) {
	tests := []struct {
		wait time.Duration
		max  time.Duration
		want time.Duration
	}{
		{wait: time.Second, max: 10 * time.Second, want: 2 * time.Second},
		{wait: 4 * time.Second, max: 5 * time.Second, want: 5 * time.Second},
		{wait: 10 * time.Second, max: 10 * time.Second, want: 10 * time.Second},
	}

	for _, tt := range tests {
		if got := nextWait(tt.wait, tt.max); got != tt.want {
			t.Errorf("nextWait(%v, %v) = %v, want %v", tt.wait, tt.max, got, tt.want)
		}
	}
}

func TestConnectRejectsInvalidOptions(t *testing.T) {
	valid := ConnectOptions{
		Addr:           "localhost:6379",
		ConnectTimeout: time.Second,
		RetryInterval:  time.Second,
		MaxWait:        time.Second,
		PingTimeout:    time.Second,
	}

	tests := []struct {
		name   string
		mutate func(*ConnectOptions)
	}{
		{name: "empty address", mutate: func(o *ConnectOptions) { o.Addr = "" }},
		{name: "zero connect timeout", mutate: func(o *ConnectOptions) { o.ConnectTimeout = 0 }},
		{name: "zero retry interval", mutate: func(o *ConnectOptions) { o.RetryInterval = 0 }},
		{name: "zero max wait", mutate: func(o *ConnectOptions) { o.MaxWait = 0 }},
		{name: "zero ping timeout", mutate: func(o *ConnectOptions) { o.PingTimeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := valid
			tt.mutate(&opts)
			client, err := Connect(context.Background(), opts, logger.NewNop())
			if err == nil {
				t.Fatalf("Connect() expected error, got client %v", client)
			}
		})
	}
}
