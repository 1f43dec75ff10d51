package crashlight

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// excerptWindow is how many source lines a frame excerpt shows at most.
const excerptWindow = 5

// printSourceIfAvail writes up to excerptWindow lines around line,
// marking the target line. Source is best-effort: a file that does not
// exist (stripped build, path from another machine) produces no output
// and no error. Any other failure aborts the report.
func (s *session) printSourceIfAvail(path string, line int) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	start := line - 2
	if start < 1 {
		start = 1
	}

	scanner := bufio.NewScanner(f)
	for no := 1; scanner.Scan(); no++ {
		if no < start {
			continue
		}
		if no >= start+excerptWindow {
			break
		}
		if no == line {
			marked := fmt.Sprintf(">>%6d %s", no, scanner.Text())
			if _, err := fmt.Fprintf(s.out, "%s\n", s.pal.marked(marked)); err != nil {
				return err
			}
		} else {
			if _, err := fmt.Fprintf(s.out, "%8d %s\n", no, scanner.Text()); err != nil {
				return err
			}
		}
	}
	// Running past EOF is fine; a read error is not.
	return scanner.Err()
}
