// Seed loads tickers into the SQLite watchlist:
//
//	seed -db data/trend_sentinel.db AAPL,MSFT,NVDA
package main

import (
	"flag"
	"log"
	"strings"

	"TrendSentinel/internal/recorder"
)

func main() {
	log.SetFlags(log.LstdFlags)

	dbPath := flag.String("db", "data/trend_sentinel.db", "path to the SQLite database")
	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatal("[FATAL] usage: seed [-db PATH] TICKER[,TICKER...]")
	}

	var tickers []string
	for _, arg := range flag.Args() {
		for _, t := range strings.Split(arg, ",") {
			if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
				tickers = append(tickers, t)
			}
		}
	}

	rec, err := recorder.NewSQLiteRecorder(*dbPath)
	if err != nil {
		log.Fatalf("[FATAL] open recorder: %v", err)
	}
	defer rec.Close()

	if err := rec.AddTickers(tickers); err != nil {
		log.Fatalf("[FATAL] add tickers: %v", err)
	}
	log.Printf("[INFO] seeded %d tickers: %s", len(tickers), strings.Join(tickers, ", "))
}
