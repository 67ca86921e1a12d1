package constants

// Centralized constants for env keys, routes and API responses.
const (
	// Environment variable keys
	EnvConfigPath       = "WARLORD_CONFIG"
	EnvDatabasePath     = "WARLORD_DB"
	EnvAddress          = "WARLORD_ADDR"
	EnvPlacementTimeout = "WARLORD_PLACEMENT_TIMEOUT"
	EnvHealthcheckURL   = "HEALTHCHECK_URL"

	// HTTP headers and content types
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"
)

// Routes used by the backend router
const (
	RouteAPIPrefix  = "/api"
	RouteVersion    = "/version"
	RouteCards      = "/cards"
	RouteWarlords   = "/warlords"
	RouteMatches    = "/matches"
	RouteMatchByID  = "/matches/:matchID"
	RouteMatchPlace = "/matches/:matchID/place"
	RouteMatchSkip  = "/matches/:matchID/skip"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest      = "Invalid request"
	ErrInvalidMatchID      = "Invalid match ID"
	ErrMatchNotFound       = "Match not found"
	ErrInvalidCell         = "Invalid cell"
	ErrFailedFetchCards    = "Failed to fetch cards"
	ErrFailedFetchWarlords = "Failed to fetch warlords"
	ErrFailedFetchMatches  = "Failed to fetch matches"
	ErrFailedCreateMatch   = "Failed to create match"
	ErrFailedEncodeMatch   = "Failed to encode match"
	ErrCatalogEmpty        = "Catalog has no cards or warlords"
	ErrMatchFinished       = "Match is finished"
	ErrNotYourTurn         = "Not your turn"
	ErrPlacementClosed     = "Placement window is closed"
	ErrAlreadyPlaced       = "A card was already placed this turn"
	ErrCardNotInHand       = "Card is not in hand"
	ErrInvalidPlacement    = "Cell is not a valid placement for this card"
	ErrSideNotHuman        = "Side is controlled by the bot"
	ErrFailedPlaceCard     = "Failed to place card"
)

// Logging field names
const (
	LogFieldMatchID = "match_id"
	LogFieldSource  = "source"
	LogFieldAddr    = "addr"
	LogFieldCount   = "count"
)
