package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/assetd/internal/connector"
	"github.com/MrSnakeDoc/assetd/internal/logger"
	"github.com/MrSnakeDoc/assetd/internal/resource"
	redisstore "github.com/MrSnakeDoc/assetd/internal/store/redis"
)

// HitStore records and reports how often resources were served.
type HitStore interface {
	RecordHit(ctx context.Context, mount, path string) error
	TopHits(ctx context.Context, mount string, n int64) ([]redisstore.Hit, error)
	Ping(ctx context.Context) error
}

type Deps struct {
	Logger           logger.Logger
	StartTime        time.Time
	Version          string
	Commit           string
	BuildDate        string
	GoVersion        string
	TimeNow          func() time.Time    // for testing, defaults to time.Now
	Connector        connector.Connector // where the server listens
	Namespace        resource.Namespace  // read-only resource store shared by all mounts
	Mounts           []resource.Mount    // URL prefix -> namespace root pairs
	AllowedHosts     []string            // Host headers allowed on static mounts
	AllowedCIDRS     []string            // IPs allowed to access healthz/readyz/stats
	TrustProxy       bool                // true if running behind a trusted reverse proxy
	RateBurst        int                 // per-IP burst on static mounts (0 = no limit)
	RateRefillPerMin int                 // per-IP refill rate on static mounts
	Hits             HitStore            // nil when hit counting is disabled
}
