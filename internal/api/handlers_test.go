package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ericogr/warlord-cards/internal/constants"
	"github.com/ericogr/warlord-cards/internal/engine"
	"github.com/ericogr/warlord-cards/internal/game"
	"github.com/ericogr/warlord-cards/internal/logging"
	"github.com/ericogr/warlord-cards/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRepo struct {
	cards    []game.CardDefinition
	warlords []game.WarlordDefinition
	records  map[string]*game.MatchRecord
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		cards: []game.CardDefinition{
			{ID: 1, Name: "Rifleman", HP: 10, ATK: 3, AttackType: game.Ranged, Faction: game.FactionSyndicate},
			{ID: 2, Name: "Brawler", HP: 12, ATK: 4, AttackType: game.Melee, Faction: game.FactionFremen},
		},
		warlords: []game.WarlordDefinition{{ID: 1, Name: "Baron", HP: 20}},
		records:  map[string]*game.MatchRecord{},
	}
}

func (s *stubRepo) GetCards() ([]game.CardDefinition, error)       { return s.cards, nil }
func (s *stubRepo) GetWarlords() ([]game.WarlordDefinition, error) { return s.warlords, nil }

func (s *stubRepo) SaveMatch(rec *game.MatchRecord) error {
	s.records[rec.MatchID] = rec
	return nil
}

func (s *stubRepo) GetMatch(matchID string) (*game.MatchRecord, error) {
	rec, ok := s.records[matchID]
	if !ok {
		return nil, errors.New("record not found")
	}
	return rec, nil
}

func (s *stubRepo) ListRecentMatches(limit int) ([]game.MatchRecord, error) {
	out := make([]game.MatchRecord, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, *rec)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *stubRepo, *service.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logging.SetLogger(zap.NewNop())
	repo := newStubRepo()
	mgr := service.NewManager(repo, engine.Rules{}, time.Minute)
	router := gin.New()
	RegisterRoutes(router.Group(constants.RouteAPIPrefix), NewGameHandler(repo, mgr))
	return router, repo, mgr
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	msg, _ := body[constants.JSONKeyError].(string)
	return msg
}

func createMatch(t *testing.T, router *gin.Engine, body string) service.MatchView {
	t.Helper()
	w := do(router, http.MethodPost, "/api/matches", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var v service.MatchView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestListCatalog(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := do(router, http.MethodGet, "/api/cards", "")
	require.Equal(t, http.StatusOK, w.Code)
	var cards []game.CardDefinition
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cards))
	assert.Len(t, cards, 2)

	w = do(router, http.MethodGet, "/api/warlords", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Baron")
}

func TestCreateAndPlace(t *testing.T) {
	router, _, _ := newTestRouter(t)
	v := createMatch(t, router, `{"seed": 11, "first_side": "player"}`)
	require.Equal(t, game.SidePlayer, v.Active)
	require.Equal(t, game.PhasePlacement, v.Phase)
	require.NotEmpty(t, v.Hands[game.SidePlayer])

	w := do(router, http.MethodGet, "/api/matches/"+v.MatchID, "")
	require.Equal(t, http.StatusOK, w.Code)

	card := v.Hands[game.SidePlayer][0]
	w = do(router, http.MethodPost, "/api/matches/"+v.MatchID+"/place", `{"card_id": 999, "cell": "A2"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, constants.ErrCardNotInHand, decodeError(t, w))

	w = do(router, http.MethodPost, "/api/matches/"+v.MatchID+"/place", `{"card_id": 1, "cell": "Z9"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, constants.ErrInvalidCell, decodeError(t, w))

	w = do(router, http.MethodPost, "/api/matches/"+v.MatchID+"/place",
		`{"card_id": `+jsonInt(card)+`, "cell": "A2"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var after service.MatchView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &after))
	assert.NotEmpty(t, after.Log)
}

func TestCreateMatch_BadRequest(t *testing.T) {
	router, _, _ := newTestRouter(t)
	w := do(router, http.MethodPost, "/api/matches", `{"first_side": "nobody"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(router, http.MethodPost, "/api/matches", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSkipOnBotMatchConflicts(t *testing.T) {
	router, _, _ := newTestRouter(t)
	v := createMatch(t, router, `{"seed": 3, "autoplay": true}`)
	require.Equal(t, game.StatusFinished, v.Status)

	w := do(router, http.MethodPost, "/api/matches/"+v.MatchID+"/skip", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, constants.ErrMatchFinished, decodeError(t, w))
}

func TestUnknownAndInvalidMatchIDs(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := do(router, http.MethodGet, "/api/matches/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodGet, "/api/matches/6f1c2b7e-8a4d-4c55-9b0e-1d2f3a4b5c6d", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(router, http.MethodPost, "/api/matches/6f1c2b7e-8a4d-4c55-9b0e-1d2f3a4b5c6d/skip", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEvictedMatchServedFromHistory(t *testing.T) {
	router, repo, mgr := newTestRouter(t)
	v := createMatch(t, router, `{"seed": 9, "autoplay": true}`)
	require.Contains(t, repo.records, v.MatchID)
	require.Equal(t, 1, mgr.EvictFinished(time.Now().Add(time.Second)))

	w := do(router, http.MethodGet, "/api/matches/"+v.MatchID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, v.MatchID, rec["match_id"])
	assert.Contains(t, rec, "created_at")

	w = do(router, http.MethodGet, "/api/matches?limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestVersion(t *testing.T) {
	router, _, _ := newTestRouter(t)
	w := do(router, http.MethodGet, "/api/version", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "commit")
}

func jsonInt(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}
