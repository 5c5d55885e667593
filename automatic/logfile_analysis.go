package automatic

import (
	"encoding/base64"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// AnalyzeLogFile reads a game log written by StartCompVCompStaticGames and
// summarizes it.
func AnalyzeLogFile(path string) (*Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = len(gameLogHeader)

	var results []*GameResult
	for line := 1; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if rec[0] == gameLogHeader[0] {
			continue
		}
		res, err := parseGameRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		results = append(results, res)
	}
	return Summarize(results), nil
}

func parseGameRecord(rec []string) (*GameResult, error) {
	res := &GameResult{GameID: rec[0]}
	seed, err := base64.RawURLEncoding.DecodeString(rec[1])
	if err != nil {
		return nil, err
	}
	copy(res.Seed[:], seed)
	if res.Winner, err = strconv.Atoi(rec[2]); err != nil {
		return nil, err
	}
	if res.Blocked, err = strconv.ParseBool(rec[3]); err != nil {
		return nil, err
	}
	if res.Turns, err = strconv.Atoi(rec[4]); err != nil {
		return nil, err
	}
	for _, f := range strings.Fields(rec[5]) {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		res.HandValues = append(res.HandValues, v)
	}
	return res, nil
}
