package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookcollection/internal/covers"
	"github.com/mrlokans/bookcollection/internal/database"
	"github.com/mrlokans/bookcollection/internal/http"
	"github.com/mrlokans/bookcollection/internal/scheduler"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ http.CatalogStore = (*database.Database)(nil)
var _ http.Pinger = (*database.Database)(nil)
var _ http.BookReader = (*database.Database)(nil)
var _ scheduler.CoverReferences = (*database.Database)(nil)

// =============================================================================
// Cover Storage
// =============================================================================

var _ http.CoverResolver = (*covers.Store)(nil)
var _ scheduler.CoverStore = (*covers.Store)(nil)
