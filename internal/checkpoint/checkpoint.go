// Package checkpoint reads and writes the local CSV snapshot of the user
// table. Each line is
//
//	total_credit,expavg_credit,expavg_time,cpid
//
// with no header. Decoding is all-or-nothing: one bad line rejects the file.
package checkpoint

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/fath2boinc/internal/common"
	"github.com/dmitrijs2005/fath2boinc/internal/filex"
	"github.com/dmitrijs2005/fath2boinc/internal/logging"
	"github.com/dmitrijs2005/fath2boinc/internal/models"
)

const fieldCount = 4

// Load reads the checkpoint at path. A missing file is a normal first run
// and yields an empty table.
func Load(ctx context.Context, path string, log logging.Logger) (models.Users, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info(ctx, "local user data file does not exist, skipping initial load", "path", path)
		return models.Users{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open local data %s: %w", path, err)
	}
	defer f.Close()

	users, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Info(ctx, "loaded entries from local user data", "count", len(users))
	return users, nil
}

// Decode parses checkpoint lines from r. Fields are split on bare commas
// with no quoting. Blank lines are ignored and a repeated CPID overwrites
// the earlier record.
func Decode(r io.Reader) (models.Users, error) {
	sc := bufio.NewScanner(r)

	users := models.Users{}
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if text == "" {
			continue
		}

		u, err := decodeRecord(strings.Split(text, ","))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", common.ErrCorruptCheckpoint, line, err)
		}
		users[u.CPID] = u
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: line %d: %v", common.ErrCorruptCheckpoint, line+1, err)
	}
	return users, nil
}

func decodeRecord(rec []string) (*models.User, error) {
	if len(rec) != fieldCount {
		return nil, fmt.Errorf("expected %d fields, got %d", fieldCount, len(rec))
	}

	cpid := rec[3]
	if !models.IsMD5Hex(cpid) {
		return nil, fmt.Errorf("invalid cpid %q", cpid)
	}

	total, err := parseField("total_credit", rec[0], false)
	if err != nil {
		return nil, err
	}
	avg, err := parseField("expavg_credit", rec[1], false)
	if err != nil {
		return nil, err
	}
	at, err := parseField("expavg_time", rec[2], true)
	if err != nil {
		return nil, err
	}

	return &models.User{CPID: cpid, TotalCredit: total, ExpavgCredit: avg, ExpavgTime: at}, nil
}

func parseField(name, s string, allowNegative bool) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s: not finite: %q", name, s)
	}
	if !allowNegative && v < 0 {
		return 0, fmt.Errorf("%s: negative: %q", name, s)
	}
	return v, nil
}

// Encode writes one line per user, ordered by CPID.
func Encode(w io.Writer, users models.Users) error {
	for _, u := range users.Sorted() {
		if _, err := io.WriteString(w, u.CSV()); err != nil {
			return err
		}
	}
	return nil
}

// Store overwrites path with the encoded table.
func Store(path string, users models.Users) error {
	return filex.WriteFile(path, func(w *bufio.Writer) error {
		return Encode(w, users)
	})
}
