// Package logx is a thin structured-logging facade over zerolog.
//
// Components take a Logger value and emit events through Field helpers,
// so nothing else in the codebase imports zerolog directly. The zero
// Logger is a safe no-op.
package logx
