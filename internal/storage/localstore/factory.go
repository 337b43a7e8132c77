package localstore

import (
	"net/url"
	"strings"

	"github.com/BearBump/CargoBox/internal/cache/rediscache"
	"github.com/BearBump/CargoBox/internal/storage/pgblobs"
	"github.com/pkg/errors"
)

const DefaultDSN = "file://./data"

// Open выбирает бэкенд по схеме DSN: memory://, file://<dir>, redis://..., postgres://...
// Возвращает функцию закрытия (может быть no-op).
func Open(dsn string) (Blobs, func(), error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		dsn = DefaultDSN
	}
	parsed, err := url.Parse(dsn)
	if err != nil {
		return nil, nil, errors.Wrap(err, "parse local storage dsn")
	}
	noop := func() {}

	switch strings.ToLower(parsed.Scheme) {
	case "memory", "mem", "inmem":
		return NewMemStore(), noop, nil
	case "", "file":
		dir := parsed.Host + parsed.Path
		if parsed.Scheme == "" {
			dir = dsn
		}
		fs, err := NewFileStore(dir)
		if err != nil {
			return nil, nil, err
		}
		return fs, noop, nil
	case "redis", "rediss":
		rc, err := rediscache.NewFromURL(dsn)
		if err != nil {
			return nil, nil, err
		}
		return rc, func() { _ = rc.Close() }, nil
	case "postgres", "postgresql":
		st, err := pgblobs.New(dsn)
		if err != nil {
			return nil, nil, err
		}
		return st, st.Close, nil
	default:
		return nil, nil, errors.Errorf("unsupported local storage scheme: %s", parsed.Scheme)
	}
}
