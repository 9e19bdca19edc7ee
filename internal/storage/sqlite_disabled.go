//go:build !sqlite
// +build !sqlite

package storage

import (
	"errors"

	logx "leadgate/pkg/logx"
)

func openSQLite(cfg Config, log logx.Logger) (Store, error) {
	_ = cfg
	_ = log
	return nil, errors.New("sqlite ledger driver not compiled in (build with -tags sqlite)")
}
