package http

import (
	"encoding/json"
	"net/http"
	"time"
)

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	uid := userID(r)
	res, err := s.ledger.Create(r.Context(), uid, in)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	// The response shape is discriminated: an installment request returns the
	// whole plan, everything else a single transaction.
	if res.Plan != nil {
		for _, row := range res.Plan.Transactions {
			s.invalidateDashboards(uid, row.Date)
		}
		writeJSON(w, http.StatusCreated, res.Plan)
		return
	}
	s.invalidateDashboards(uid, res.Transaction.Date)
	writeJSON(w, http.StatusCreated, res.Transaction)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := s.ledger.List(r.Context(), userID(r), f)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	tx, err := s.ledger.FindOne(r.Context(), userID(r), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	patch, err := req.toPatch()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	uid := userID(r)
	updated, err := s.ledger.Update(r.Context(), uid, id, patch)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.invalidateDashboards(uid, updated.Date)
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	uid := userID(r)
	tx, err := s.ledger.FindOne(r.Context(), uid, id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if err := s.ledger.Remove(r.Context(), uid, id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.invalidateDashboards(uid, tx.Date)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMarkInstallmentPaid(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		IsPaid *bool `json:"isPaid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.IsPaid == nil {
		writeError(w, http.StatusBadRequest, "isPaid is required")
		return
	}

	uid := userID(r)
	updated, err := s.ledger.MarkInstallmentPaid(r.Context(), uid, id, *req.IsPaid)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.invalidateDashboards(uid, updated.Date)
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleGetInstallmentGroup(w http.ResponseWriter, r *http.Request) {
	group, err := s.ledger.FindInstallmentGroup(r.Context(), userID(r), r.PathValue("groupID"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (s *Server) handleDeleteInstallmentGroup(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	groupID := r.PathValue("groupID")

	group, err := s.ledger.FindInstallmentGroup(r.Context(), uid, groupID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	n, err := s.ledger.RemoveInstallmentGroup(r.Context(), uid, groupID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	for _, row := range group.Transactions {
		s.invalidateDashboards(uid, row.Date)
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deletedCount": n})
}

// invalidateDashboards drops the cached aggregations for the month a write
// touched.
func (s *Server) invalidateDashboards(uid string, date time.Time) {
	key := dashKey(uid, date.Year(), int(date.Month()))
	s.summaryCache.Delete(key)
	s.byCatCache.Delete(key)
	s.byMethCache.Delete(key)
}
