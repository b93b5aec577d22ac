package ch

import (
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// BuildClientInfo names this process in system.query_log
func BuildClientInfo(role string) clickhouse.ClientInfo {
	host, _ := os.Hostname()

	type product = struct{ Name, Version string }
	return clickhouse.ClientInfo{
		Products: []product{
			{Name: "muzzle", Version: strings.TrimSpace(role)},
			{Name: "go", Version: runtime.Version()},
			{Name: "commit", Version: vcsShortSHA()},
			{Name: "host", Version: strings.TrimSpace(host)},
		},
	}
}

func vcsShortSHA() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				return s.Value[:7]
			}
		}
	}
	return "unknown"
}
