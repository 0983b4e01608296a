package entity

import stockentity "broker_backend/internal/feature/stocks/domain/entity"

// StockMatch is the result of resolving a detected logo against the
// stocks held in the database.
type StockMatch struct {
	Stock      *stockentity.Stock // the matched stock record
	LogoName   string             // the detected brand name that produced the match
	Confidence float32            // detection score of that logo
	Brief      string             // optional generated company brief, empty when unavailable
}
