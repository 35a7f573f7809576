package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// genesisHash is the PrevHash of the first entry.
const genesisHash = "0"

// Entry is one line of the high-score table.
type Entry struct {
	Index    int       `json:"index"`
	Initials string    `json:"initials"`
	Score    int       `json:"score"`
	Date     time.Time `json:"date"`
	// Seq orders entries by insertion and breaks score ties.
	Seq      int64  `json:"seq"`
	PrevHash string `json:"prev_hash"`
	Hash     string `json:"hash"`
}

// calculateHash computes the SHA256 of the entry's content and link.
func calculateHash(e Entry) string {
	data := fmt.Sprintf("%d%s%d%d%d%s",
		e.Index,
		e.Initials,
		e.Score,
		e.Date.Unix(),
		e.Seq,
		e.PrevHash,
	)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

// chain renumbers entries in place and links them from the genesis hash.
func chain(entries []Entry) {
	prev := genesisHash
	for i := range entries {
		entries[i].Index = i
		entries[i].PrevHash = prev
		entries[i].Hash = calculateHash(entries[i])
		prev = entries[i].Hash
	}
}

// verify checks index continuity, links and hashes of a whole table.
func verify(entries []Entry) error {
	prev := genesisHash
	for i, e := range entries {
		if e.Index != i {
			return fmt.Errorf("%w: entry %d: invalid index %d", ErrBrokenChain, i, e.Index)
		}
		if e.PrevHash != prev {
			return fmt.Errorf("%w: entry %d: invalid prev hash: expected %s, got %s", ErrBrokenChain, i, prev, e.PrevHash)
		}
		if expected := calculateHash(e); e.Hash != expected {
			return fmt.Errorf("%w: entry %d: invalid hash: expected %s, got %s", ErrBrokenChain, i, expected, e.Hash)
		}
		if i > 0 && e.Score > entries[i-1].Score {
			return fmt.Errorf("%w: entry %d: score %d above the previous %d", ErrBrokenChain, i, e.Score, entries[i-1].Score)
		}
		prev = e.Hash
	}
	return nil
}
