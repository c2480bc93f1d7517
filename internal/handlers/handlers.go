package handlers

import (
	"launchcontrol/internal/engine"
	"launchcontrol/internal/ledger"
)

var (
	eng   *engine.Engine
	store ledger.Store
)

// Init wires the presale engine and the backing ledger store into the
// handler package.
func Init(e *engine.Engine, s ledger.Store) {
	eng = e
	store = s
}
