package server

import (
	"net/http"
	"testing"
)

type saveEntryReq struct {
	Notes  string   `json:"notes"`
	Photos []string `json:"photos"`
}

func saveEntry(t *testing.T, s *Server, date, notes string) map[string]any {
	t.Helper()
	rec := request(t, s, http.MethodPost, "/api/entries/"+date, saveEntryReq{Notes: notes})
	if rec.Code != http.StatusOK {
		t.Fatalf("save %s: status = %d, body %s", date, rec.Code, rec.Body.String())
	}
	var body map[string]any
	decodeBody(t, rec, &body)
	return body
}

func entryHealthData(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	entry, ok := body["entry"].(map[string]any)
	if !ok {
		t.Fatalf("no entry in response: %v", body)
	}
	hd, ok := entry["healthData"].(map[string]any)
	if !ok {
		t.Fatalf("no healthData in entry: %v", entry)
	}
	return hd
}

func TestSaveAndGetEntry(t *testing.T) {
	s := testServer(t)

	body := saveEntry(t, s, "2025-03-01", "Weighed in at 185.2\nTotal calories: ~1,850")
	if body["message"] != "Entry saved" {
		t.Errorf("message = %v", body["message"])
	}
	hd := entryHealthData(t, body)
	if hd["caloriesConsumed"].(float64) != 1850 {
		t.Errorf("caloriesConsumed = %v, want 1850", hd["caloriesConsumed"])
	}
	if hd["weight"].(float64) != 185.2 {
		t.Errorf("weight = %v, want 185.2", hd["weight"])
	}

	rec := request(t, s, http.MethodGet, "/api/entries/2025-03-01", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status = %d", rec.Code)
	}
	var got map[string]any
	decodeBody(t, rec, &got)
	if got["notes"] != "Weighed in at 185.2\nTotal calories: ~1,850" {
		t.Errorf("notes = %v", got["notes"])
	}
}

func TestGetEntryNotFound(t *testing.T) {
	s := testServer(t)

	rec := request(t, s, http.MethodGet, "/api/entries/2025-03-01", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body map[string]string
	decodeBody(t, rec, &body)
	if body["error"] != "Entry not found" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestSaveEmptyDeletesEntry(t *testing.T) {
	s := testServer(t)

	saveEntry(t, s, "2025-03-01", "Total calories: 1800")

	rec := request(t, s, http.MethodPost, "/api/entries/2025-03-01", saveEntryReq{})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	decodeBody(t, rec, &body)
	if body["message"] != "Entry deleted" {
		t.Errorf("message = %q, want Entry deleted", body["message"])
	}

	rec = request(t, s, http.MethodGet, "/api/entries/2025-03-01", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("entry survived empty save: status = %d", rec.Code)
	}
}

func TestSavePhotosOnlyKeepsEntry(t *testing.T) {
	s := testServer(t)

	rec := request(t, s, http.MethodPost, "/api/entries/2025-03-01",
		saveEntryReq{Photos: []string{"plate.jpg"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	decodeBody(t, rec, &body)
	if body["message"] != "Entry saved" {
		t.Errorf("message = %v, want Entry saved", body["message"])
	}
}

func TestSaveEntryCrossDayFasting(t *testing.T) {
	s := testServer(t)

	saveEntry(t, s, "2025-03-01", "**9:00 PM** - dinner ~700 cal")
	body := saveEntry(t, s, "2025-03-02", "**8:00 AM** - eggs and toast ~400 cal")

	hd := entryHealthData(t, body)
	if hd["fastingHours"].(float64) != 11 {
		t.Errorf("fastingHours = %v, want 11", hd["fastingHours"])
	}
}

func TestSaveEntryExplicitFastingWins(t *testing.T) {
	s := testServer(t)

	saveEntry(t, s, "2025-03-01", "**9:00 PM** - dinner ~700 cal")
	body := saveEntry(t, s, "2025-03-02",
		"Fasting window: 14 hours\n**8:00 AM** - eggs and toast ~400 cal")

	hd := entryHealthData(t, body)
	if hd["fastingHours"].(float64) != 14 {
		t.Errorf("fastingHours = %v, want 14", hd["fastingHours"])
	}
}

func TestListEntries(t *testing.T) {
	s := testServer(t)

	saveEntry(t, s, "2025-03-01", "Total calories: 1800")
	saveEntry(t, s, "2025-03-02", "Total calories: 1900")

	rec := request(t, s, http.MethodGet, "/api/entries", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]map[string]any
	decodeBody(t, rec, &body)
	if len(body) != 2 {
		t.Fatalf("entry count = %d, want 2", len(body))
	}
	if _, ok := body["2025-03-01"]; !ok {
		t.Error("missing 2025-03-01 in listing")
	}
}

func TestProfileEmptyByDefault(t *testing.T) {
	s := testServer(t)

	rec := request(t, s, http.MethodGet, "/api/profile", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	decodeBody(t, rec, &body)
	if len(body) != 0 {
		t.Errorf("profile = %v, want empty object", body)
	}
}

func TestSaveProfileComputesTargets(t *testing.T) {
	s := testServer(t)

	rec := request(t, s, http.MethodPost, "/api/profile", map[string]any{
		"age":            35,
		"sex":            "male",
		"height_feet":    5,
		"height_inches":  10,
		"weight":         185,
		"activity_level": "moderately_active",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var body map[string]any
	decodeBody(t, rec, &body)
	if body["bmr"].(float64) != 1780 {
		t.Errorf("bmr = %v, want 1780", body["bmr"])
	}
	if body["tdee"].(float64) != 2760 {
		t.Errorf("tdee = %v, want 2760", body["tdee"])
	}
	if body["calorie_target"].(float64) != 2260 {
		t.Errorf("calorie_target = %v, want 2260", body["calorie_target"])
	}

	// A subsequent GET returns the stored profile.
	rec = request(t, s, http.MethodGet, "/api/profile", nil)
	decodeBody(t, rec, &body)
	if body["age"].(float64) != 35 || body["sex"] != "male" {
		t.Errorf("stored profile = %v", body)
	}
}

func TestWeekSummary(t *testing.T) {
	s := testServer(t)

	// 2025-03-03 is a Monday; 2025-03-10 starts the next week.
	saveEntry(t, s, "2025-03-03", "Total calories: 1800")
	saveEntry(t, s, "2025-03-04", "Total calories: 2000\nExercise: 30 min")
	saveEntry(t, s, "2025-03-10", "Total calories: 5000")

	rec := request(t, s, http.MethodGet, "/api/summary/week/2025-03-05", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	decodeBody(t, rec, &body)
	if body["daysTracked"].(float64) != 2 {
		t.Errorf("daysTracked = %v, want 2", body["daysTracked"])
	}
	if body["avgCaloriesConsumed"].(float64) != 1900 {
		t.Errorf("avgCaloriesConsumed = %v, want 1900", body["avgCaloriesConsumed"])
	}
	if body["totalExerciseMinutes"].(float64) != 30 {
		t.Errorf("totalExerciseMinutes = %v, want 30", body["totalExerciseMinutes"])
	}
}

func TestWeekSummaryMalformedDate(t *testing.T) {
	s := testServer(t)

	rec := request(t, s, http.MethodGet, "/api/summary/week/not-a-date", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]any
	decodeBody(t, rec, &body)
	if body["daysTracked"].(float64) != 0 {
		t.Errorf("daysTracked = %v, want 0", body["daysTracked"])
	}
}

func TestMonthSummary(t *testing.T) {
	s := testServer(t)

	saveEntry(t, s, "2025-03-01", "Total calories: 1800")
	saveEntry(t, s, "2025-03-31", "Total calories: 2200")
	saveEntry(t, s, "2025-04-01", "Total calories: 9000")

	rec := request(t, s, http.MethodGet, "/api/summary/month/2025/3", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	decodeBody(t, rec, &body)
	if body["daysTracked"].(float64) != 2 {
		t.Errorf("daysTracked = %v, want 2", body["daysTracked"])
	}
	if body["avgCaloriesConsumed"].(float64) != 2000 {
		t.Errorf("avgCaloriesConsumed = %v, want 2000", body["avgCaloriesConsumed"])
	}
}

func TestMonthSummaryInvalidMonth(t *testing.T) {
	s := testServer(t)

	rec := request(t, s, http.MethodGet, "/api/summary/month/2025/13", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]any
	decodeBody(t, rec, &body)
	if body["daysTracked"].(float64) != 0 {
		t.Errorf("daysTracked = %v, want 0", body["daysTracked"])
	}
}

func TestSummaryUsesProfileTarget(t *testing.T) {
	s := testServer(t)

	rec := request(t, s, http.MethodPost, "/api/profile", map[string]any{
		"age":            35,
		"sex":            "male",
		"height_feet":    5,
		"height_inches":  10,
		"weight":         185,
		"activity_level": "moderately_active",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("save profile: status = %d", rec.Code)
	}

	saveEntry(t, s, "2025-03-03", "Total calories: 1800")

	rec = request(t, s, http.MethodGet, "/api/summary/week/2025-03-03", nil)
	var body map[string]any
	decodeBody(t, rec, &body)
	if body["calorieTarget"].(float64) != 2260 {
		t.Errorf("calorieTarget = %v, want 2260", body["calorieTarget"])
	}
	if body["totalDeficit"].(float64) != 460 {
		t.Errorf("totalDeficit = %v, want 460", body["totalDeficit"])
	}
}

func TestOverallSummaryInsufficient(t *testing.T) {
	s := testServer(t)

	saveEntry(t, s, "2025-03-01", "Weighed in at 190")

	rec := request(t, s, http.MethodGet, "/api/summary/overall", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	decodeBody(t, rec, &body)
	if body["message"] != "Need at least 2 weight entries to show progress" {
		t.Errorf("message = %v", body["message"])
	}
	if body["entries"].(float64) != 1 {
		t.Errorf("entries = %v, want 1", body["entries"])
	}
}

func TestOverallSummaryProgress(t *testing.T) {
	s := testServer(t)

	saveEntry(t, s, "2025-03-01", "Weighed in at 190")
	saveEntry(t, s, "2025-03-15", "Weighed in at 185.5")

	rec := request(t, s, http.MethodGet, "/api/summary/overall", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	decodeBody(t, rec, &body)
	if body["startWeight"].(float64) != 190 {
		t.Errorf("startWeight = %v, want 190", body["startWeight"])
	}
	if body["currentWeight"].(float64) != 185.5 {
		t.Errorf("currentWeight = %v, want 185.5", body["currentWeight"])
	}
	if body["totalChange"].(float64) != 4.5 {
		t.Errorf("totalChange = %v, want 4.5", body["totalChange"])
	}
	if body["daysBetween"].(float64) != 14 {
		t.Errorf("daysBetween = %v, want 14", body["daysBetween"])
	}
	if body["totalWeighIns"].(float64) != 2 {
		t.Errorf("totalWeighIns = %v, want 2", body["totalWeighIns"])
	}
}
