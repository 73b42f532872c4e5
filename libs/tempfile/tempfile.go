package tempfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	// Maximum number of scratch dir name conflicts before we start reseeding
	// (reduced from golang's default 10 due to using an increased randomness
	// space)
	scratchDirMaxNumConflicts = 5
	// Maximum number of attempts to make at creating the scratch dir before
	// giving up
	scratchDirMaxNumCreateAttempts = 1000
	// LCG constants from Donald Knuth MMIX
	// This LCG's has a period equal to 2**64
	lcgA = 6364136223846793005
	lcgC = 1442695040888963407
	// Create in case it doesn't exist, never overwrite existing files. The
	// exclusive flag keeps one iteration's file from clobbering another's
	// should two scratch paths ever collide.
	createFileFlag = os.O_WRONLY | os.O_CREATE | os.O_EXCL
)

var (
	scratchDirRand   uint64
	scratchDirRandMu sync.Mutex
)

func scratchDirRandReseed() uint64 {
	// Scale the PID, to minimize the chance that two processes seeded at
	// similar times get the same seed. Note that PID typically ranges in
	// [0, 2**15), but can be up to 2**22 under certain configurations. We
	// left bit-shift the PID by 20, so that a PID difference of one
	// corresponds to a time difference of 2048 seconds. For a seed conflict
	// both processes would have to be on the correct nanosecond offset and
	// second-based offset, which is much less likely than just a conflict
	// with the correct nanosecond offset.
	return uint64(time.Now().UnixNano() + int64(os.Getpid()<<20))
}

// Use a fast thread safe LCG for scratch dir names.
// Returns a string corresponding to a 64 bit int.
// If it was a negative int, the leading number is a 0.
func randScratchSuffix() string {
	scratchDirRandMu.Lock()
	r := scratchDirRand
	if r == 0 {
		r = scratchDirRandReseed()
	}

	// Update randomness according to lcg
	r = r*lcgA + lcgC

	scratchDirRand = r
	scratchDirRandMu.Unlock()
	// Can have a negative name, replace this in the following
	suffix := strconv.Itoa(int(r))
	if string(suffix[0]) == "-" {
		// Replace first "-" with "0". This is purely for UI clarity,
		// as otherwhise there would be two `-` in a row.
		suffix = strings.Replace(suffix, "-", "0", 1)
	}
	return suffix
}

// ScratchDir is a uniquely named ephemeral directory under the OS temp root.
// Each ScratchDir is exclusively owned by the caller that created it and is
// expected to be removed (usually via defer) when the caller is done.
type ScratchDir struct {
	path string
}

// NewScratchDir creates a fresh directory named prefix-<suffix> under the OS
// temp root, where <suffix> comes from a thread safe 64 bit LCG. Collisions
// with leftover directories from other processes are retried with a bounded
// number of attempts, reseeding once too many conflicts pile up.
func NewScratchDir(prefix string) (*ScratchDir, error) {
	root := os.TempDir()

	nconflict := 0
	for i := 0; i < scratchDirMaxNumCreateAttempts; i++ {
		path := filepath.Join(root, prefix+"-"+randScratchSuffix())
		err := os.Mkdir(path, 0o700)
		// If the dir already exists, try a new name
		if os.IsExist(err) {
			// If the dir exists too many times, start reseeding as we've
			// likely hit another instances seed.
			if nconflict++; nconflict > scratchDirMaxNumConflicts {
				scratchDirRandMu.Lock()
				scratchDirRand = scratchDirRandReseed()
				scratchDirRandMu.Unlock()
			}
			continue
		} else if err != nil {
			return nil, err
		}
		return &ScratchDir{path: path}, nil
	}
	return nil, fmt.Errorf("could not create scratch dir after %d attempts", scratchDirMaxNumCreateAttempts)
}

// Root returns the directory's path.
func (d *ScratchDir) Root() string {
	return d.path
}

// Path returns the path of name inside the scratch directory.
func (d *ScratchDir) Path(name string) string {
	return filepath.Join(d.path, name)
}

// Remove deletes the directory and everything in it. Removing an already
// removed ScratchDir is a no-op.
func (d *ScratchDir) Remove() error {
	return os.RemoveAll(d.path)
}

// WriteFile creates path exclusively with the provided perm and writes data
// to it in full. A short write is reported as io.ErrShortWrite. Zero-length
// data produces a zero-length file.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	f, err := os.OpenFile(path, createFileFlag, perm)
	if err != nil {
		return err
	}

	if n, err := f.Write(data); err != nil {
		f.Close()
		return err
	} else if n < len(data) {
		f.Close()
		return io.ErrShortWrite
	}

	return f.Close()
}
