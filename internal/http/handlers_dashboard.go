package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"
)

func (s *Server) handleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	uid := userID(r)
	key := dashKey(uid, year, month)
	if cached, ok := s.summaryCache.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	sum, err := s.dashboard.MonthlySum(r.Context(), uid, year, month)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.summaryCache.Set(key, sum)
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleDashboardByCategory(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	uid := userID(r)
	key := dashKey(uid, year, month)
	if cached, ok := s.byCatCache.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	sums, err := s.dashboard.SumByCategory(r.Context(), uid, year, month)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.byCatCache.Set(key, sums)
	writeJSON(w, http.StatusOK, sums)
}

func (s *Server) handleDashboardByMethod(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	uid := userID(r)
	key := dashKey(uid, year, month)
	if cached, ok := s.byMethCache.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	sums, err := s.dashboard.SumByPaymentMethod(r.Context(), uid, year, month)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.byMethCache.Set(key, sums)
	writeJSON(w, http.StatusOK, sums)
}

// parseYearMonth reads year/month query parameters, defaulting to the
// current month.
func parseYearMonth(r *http.Request) (year, month int, err error) {
	now := time.Now()
	year, month = now.Year(), int(now.Month())

	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		y, convErr := strconv.Atoi(v)
		if convErr != nil || y < 2000 || y > 2100 {
			return 0, 0, errYearRange
		}
		year = y
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		m, convErr := strconv.Atoi(v)
		if convErr != nil || m < 1 || m > 12 {
			return 0, 0, errMonthRange
		}
		month = m
	}
	return year, month, nil
}

var (
	errYearRange  = errors.New("year must be between 2000 and 2100")
	errMonthRange = errors.New("month must be between 1 and 12")
)

func dashKey(uid string, year, month int) string {
	return uid + ":" + strconv.Itoa(year) + "-" + strconv.Itoa(month)
}
