package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lazypower/healthjournal/internal/journal"
	"github.com/lazypower/healthjournal/internal/store"
)

const dateLayout = "2006-01-02"

// entryJSON is the wire shape of one journal entry.
type entryJSON struct {
	Notes      string          `json:"notes"`
	Photos     []string        `json:"photos"`
	HealthData json.RawMessage `json:"healthData"`
	Timestamp  int64           `json:"timestamp"`
}

func toEntryJSON(e *store.Entry) entryJSON {
	out := entryJSON{
		Notes:      e.Notes,
		Photos:     e.Photos,
		HealthData: e.HealthData,
		Timestamp:  e.SavedAt,
	}
	if out.Photos == nil {
		out.Photos = []string{}
	}
	if out.HealthData == nil {
		out.HealthData = json.RawMessage(`{}`)
	}
	return out
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.db.ListAll()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	out := make(map[string]entryJSON, len(entries))
	for i := range entries {
		out[entries[i].Date] = toEntryJSON(&entries[i])
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	entry, err := s.db.GetEntry(date)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if entry == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Entry not found"})
		return
	}
	writeJSON(w, http.StatusOK, toEntryJSON(entry))
}

func (s *Server) handleSaveEntry(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	var req struct {
		Notes  string   `json:"notes"`
		Photos []string `json:"photos"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	// An entry with no notes and no photos is deleted, not stored empty.
	if req.Notes == "" && len(req.Photos) == 0 {
		if err := s.db.DeleteEntry(date); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Entry deleted"})
		return
	}

	hd := journal.Extract(req.Notes)
	if fasting := journal.ResolveFasting(hd, s.prevDayLookup(date)); fasting > 0 {
		hd.FastingHours = fasting
	}

	raw, err := json.Marshal(hd)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	entry, err := s.db.UpsertEntry(date, req.Notes, req.Photos, raw)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Entry saved",
		"entry":   toEntryJSON(entry),
	})
}

// prevDayLookup returns a fasting-resolver lookup bound to the previous
// calendar date's record. Malformed dates and missing rows read as no data.
func (s *Server) prevDayLookup(date string) journal.PrevDayLookup {
	return func() *journal.HealthData {
		d, err := time.Parse(dateLayout, date)
		if err != nil {
			return nil
		}
		prev, err := s.db.GetEntry(d.AddDate(0, 0, -1).Format(dateLayout))
		if err != nil || prev == nil {
			return nil
		}
		hd := journal.Extract(prev.Notes)
		return &hd
	}
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.db.GetProfile()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if p == nil {
		writeJSON(w, http.StatusOK, map[string]any{})
		return
	}
	writeJSON(w, http.StatusOK, profileJSON(p))
}

func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BirthDate     string  `json:"birth_date"`
		Age           int     `json:"age"`
		Sex           string  `json:"sex"`
		HeightFeet    int     `json:"height_feet"`
		HeightInches  int     `json:"height_inches"`
		Weight        float64 `json:"weight"`
		ActivityLevel string  `json:"activity_level"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	age := req.Age
	if req.BirthDate != "" {
		if birth, err := time.Parse(dateLayout, req.BirthDate); err == nil {
			age = journal.AgeAt(birth, time.Now())
		}
	}

	heightInches := float64(req.HeightFeet*12 + req.HeightInches)
	bmr := journal.BMR(age, req.Sex, heightInches, req.Weight)
	tdee := journal.TDEE(bmr, req.ActivityLevel)

	p := &store.Profile{
		BirthDate:     req.BirthDate,
		Age:           age,
		Sex:           req.Sex,
		HeightFeet:    req.HeightFeet,
		HeightInches:  req.HeightInches,
		Weight:        req.Weight,
		ActivityLevel: req.ActivityLevel,
		BMR:           bmr,
		TDEE:          tdee,
		CalorieTarget: journal.CalorieTarget(tdee),
	}
	if err := s.db.SaveProfile(p); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, profileJSON(p))
}

func profileJSON(p *store.Profile) map[string]any {
	return map[string]any{
		"birth_date":     p.BirthDate,
		"age":            p.Age,
		"sex":            p.Sex,
		"height_feet":    p.HeightFeet,
		"height_inches":  p.HeightInches,
		"weight":         p.Weight,
		"activity_level": p.ActivityLevel,
		"bmr":            int(p.BMR + 0.5),
		"tdee":           int(p.TDEE + 0.5),
		"calorie_target": int(p.CalorieTarget + 0.5),
		"updated_at":     p.UpdatedAt,
	}
}

func (s *Server) handleWeekSummary(w http.ResponseWriter, r *http.Request) {
	d, err := time.Parse(dateLayout, chi.URLParam(r, "date"))
	if err != nil {
		// Malformed dates yield an empty summary, not an error.
		writeJSON(w, http.StatusOK, journal.Summarize(nil, s.calorieTarget()))
		return
	}

	// Monday-start week containing d.
	offset := (int(d.Weekday()) + 6) % 7
	start := d.AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, 6)

	s.summarizeRange(w, start.Format(dateLayout), end.Format(dateLayout))
}

func (s *Server) handleMonthSummary(w http.ResponseWriter, r *http.Request) {
	year, yerr := strconv.Atoi(chi.URLParam(r, "year"))
	month, merr := strconv.Atoi(chi.URLParam(r, "month"))
	if yerr != nil || merr != nil || month < 1 || month > 12 {
		writeJSON(w, http.StatusOK, journal.Summarize(nil, s.calorieTarget()))
		return
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	s.summarizeRange(w, start.Format(dateLayout), end.Format(dateLayout))
}

func (s *Server) summarizeRange(w http.ResponseWriter, start, end string) {
	entries, err := s.db.ListRange(start, end)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, journal.Summarize(toDayRecords(entries), s.calorieTarget()))
}

func (s *Server) handleOverallSummary(w http.ResponseWriter, r *http.Request) {
	entries, err := s.db.ListAll()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	progress, weighIns := journal.OverallProgress(toDayRecords(entries))
	if progress == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Need at least 2 weight entries to show progress",
			"entries": weighIns,
		})
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// calorieTarget loads the configured target, or nil when no profile exists.
// The target is injected into the aggregation, never read there.
func (s *Server) calorieTarget() *float64 {
	p, err := s.db.GetProfile()
	if err != nil || p == nil || p.CalorieTarget == 0 {
		return nil
	}
	t := p.CalorieTarget
	return &t
}

func toDayRecords(entries []store.Entry) []journal.DayRecord {
	days := make([]journal.DayRecord, len(entries))
	for i, e := range entries {
		days[i] = journal.DayRecord{
			Date:  e.Date,
			Notes: e.Notes,
		}
		if e.HealthData != nil {
			// A stale or malformed snapshot reads as all defaults.
			if err := json.Unmarshal(e.HealthData, &days[i].Snapshot); err != nil {
				log.Printf("summary: malformed snapshot for %s: %v", e.Date, err)
			}
		}
	}
	return days
}
