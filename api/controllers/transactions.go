package controllers

import (
	"net/http"

	"github.com/ramyastore/ramyastore-backend/api/responses"
	"github.com/ramyastore/ramyastore-backend/internal/sellerreports"
	"github.com/ramyastore/ramyastore-backend/internal/transactions"
	"github.com/ramyastore/ramyastore-backend/pkg/logger"
)

// SellerTransactions lists the settlement ledger for the seller.
func SellerTransactions(svc transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, err := sellerIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListBySeller(r.Context(), sellerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// SellerReport returns the seller's lifetime counters.
func SellerReport(svc sellerreports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, err := sellerIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.GetBySeller(r.Context(), sellerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}
