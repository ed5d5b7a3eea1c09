package http

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/couchcryptid/crop-advisory-service/internal/advisory"
	"github.com/couchcryptid/crop-advisory-service/internal/domain"
	"github.com/couchcryptid/crop-advisory-service/internal/location"
)

const (
	msgUnknownLocation = "Invalid continent or location. Check spelling and spaces."
	msgUnknownPlace    = "Location not found. Use exact name like 'Nigeria - Kano' (with space-dash-space)."
)

// API serves the weather, crop, and alert endpoints under /api.
type API struct {
	service   *advisory.Service
	directory *location.Directory
	logger    *slog.Logger
}

// NewAPI creates the /api handlers.
func NewAPI(service *advisory.Service, directory *location.Directory, logger *slog.Logger) *API {
	return &API{
		service:   service,
		directory: directory,
		logger:    logger,
	}
}

func (a *API) routes(r chi.Router) {
	r.Get("/weather/all", a.handleAllWeather)
	r.Get("/weather/with-crops/{continent}/{country}", a.handleWeatherWithCrops)
	r.Get("/weather/{continent}/{country}", a.handleWeather)
	r.Get("/nigeria/{state}", a.handleState)

	r.Get("/crops", a.handleListCrops)
	r.Post("/crops/score", a.handleScoreAll)
	r.Get("/crops/{name}", a.handleGetCrop)
	r.Post("/crops/{name}/score", a.handleScoreOne)
	r.Post("/alerts", a.handleAlerts)
}

type placeLocation struct {
	Continent string  `json:"continent"`
	Country   string  `json:"country"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
}

func newPlaceLocation(p domain.Place) placeLocation {
	return placeLocation{Continent: p.Continent, Country: p.DisplayName(), Lat: p.Geo.Lat, Lon: p.Geo.Lon}
}

type stateLocation struct {
	State        string  `json:"state"`
	Capital      string  `json:"capital"`
	Abbreviation string  `json:"abbreviation"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

type weatherResponse struct {
	Location any                    `json:"location"`
	Weather  domain.WeatherSnapshot `json:"weather"`
}

type weatherWithCropsResponse struct {
	Location         placeLocation          `json:"location"`
	Weather          domain.WeatherSnapshot `json:"weather"`
	RecommendedCrops []domain.ScoreResult   `json:"recommended_crops"`
	Alerts           []domain.Alert         `json:"alerts"`
}

func (a *API) handleAllWeather(w http.ResponseWriter, r *http.Request) {
	results := a.service.AllWeather(r.Context(), a.directory.All())

	out := make(map[string]map[string]any, len(a.directory.Continents()))
	for _, c := range a.directory.Continents() {
		out[c] = map[string]any{}
	}
	for _, res := range results {
		if res.Err != nil {
			a.logger.Warn("weather fetch failed", "place", res.Place.Name, "error", res.Err)
			out[res.Place.Continent][res.Place.DisplayName()] = map[string]string{"error": res.Err.Error()}
			continue
		}
		out[res.Place.Continent][res.Place.DisplayName()] = res.Weather
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) handleWeather(w http.ResponseWriter, r *http.Request) {
	place, err := a.directory.Resolve(pathParam(r, "continent"), pathParam(r, "country"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, msgUnknownLocation)
		return
	}

	snap, err := a.service.Weather(r.Context(), place)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, weatherResponse{Location: newPlaceLocation(place), Weather: snap})
}

func (a *API) handleWeatherWithCrops(w http.ResponseWriter, r *http.Request) {
	place, err := a.directory.Resolve(pathParam(r, "continent"), pathParam(r, "country"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, msgUnknownPlace)
		return
	}

	adv, err := a.service.Advise(r.Context(), place)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, weatherWithCropsResponse{
		Location:         newPlaceLocation(place),
		Weather:          adv.Weather,
		RecommendedCrops: adv.RecommendedCrops,
		Alerts:           adv.Alerts,
	})
}

func (a *API) handleState(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "state")
	state, err := a.directory.State(name)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "State '"+name+"' not found in Nigeria.")
		return
	}

	snap, err := a.service.Weather(r.Context(), state.Place())
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, weatherResponse{
		Location: stateLocation{
			State:        state.Name,
			Capital:      state.Capital,
			Abbreviation: state.Abbreviation,
			Latitude:     state.Geo.Lat,
			Longitude:    state.Geo.Lon,
		},
		Weather: snap,
	})
}

func (a *API) handleListCrops(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.service.Catalog().All())
}

func (a *API) handleGetCrop(w http.ResponseWriter, r *http.Request) {
	crop, err := a.service.Catalog().Lookup(pathParam(r, "name"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, crop)
}

func (a *API) handleScoreAll(w http.ResponseWriter, r *http.Request) {
	month, err := a.monthParam(r)
	if err != nil {
		a.writeError(w, err)
		return
	}
	top, err := topParam(r)
	if err != nil {
		a.writeError(w, err)
		return
	}
	snap, err := a.decodeSnapshot(r)
	if err != nil {
		a.writeError(w, err)
		return
	}

	eval, err := a.service.Evaluate(snap, month, top)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eval)
}

func (a *API) handleScoreOne(w http.ResponseWriter, r *http.Request) {
	month, err := a.monthParam(r)
	if err != nil {
		a.writeError(w, err)
		return
	}
	snap, err := a.decodeSnapshot(r)
	if err != nil {
		a.writeError(w, err)
		return
	}

	result, err := a.service.ScoreCrop(pathParam(r, "name"), snap, month)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *API) handleAlerts(w http.ResponseWriter, r *http.Request) {
	snap, err := a.decodeSnapshot(r)
	if err != nil {
		a.writeError(w, err)
		return
	}

	alerts, err := a.service.Alerts(snap)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]domain.Alert{"alerts": alerts})
}

// writeError maps domain sentinels onto HTTP statuses.
func (a *API) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUpstream):
		status = http.StatusBadGateway
	default:
		a.logger.Error("unhandled error", "error", err)
	}
	writeMessage(w, status, err.Error())
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// pathParam returns a decoded URL parameter; names like "Nigeria - Kano"
// arrive percent-encoded.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
