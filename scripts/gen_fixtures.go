// Command gen_fixtures is a development-time tool, not part of the shipped
// interpreter. It runs every *.3rd file under testdata/fixtures concurrently
// through the built thirdbyte command (one subprocess per fixture, the same
// shell-out-to-a-built-tool shape the teacher's scripts/gen_vm_expects.go
// uses against goimports) and writes each fixture's captured stdout next to
// it as a sibling *.expected golden file. conformance_test.go reads those
// golden files back in-process; this tool only needs to run again when a
// fixture's expected output changes.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

func main() {
	var (
		dir     = flag.String("dir", "testdata/fixtures", "directory of .3rd fixture files")
		bin     = flag.String("bin", ".", "package path of the thirdbyte command (go run target)")
		timeout = flag.Duration("timeout", 10*time.Second, "overall generation time limit")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, *dir, *bin); err != nil {
		log.Fatalln(err)
	}
}

func run(ctx context.Context, dir, bin string) error {
	names, err := fixtureNames(dir)
	if err != nil {
		return err
	}

	eg, ctx := errgroup.WithContext(ctx)
	for _, name := range names {
		name := name
		eg.Go(func() error {
			return generateOne(ctx, bin, dir, name)
		})
	}
	return eg.Wait()
}

func fixtureNames(dir string) ([]string, error) {
	entries, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, ent := range entries {
		if !ent.IsDir() && filepath.Ext(ent.Name()) == ".3rd" {
			names = append(names, ent.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// generateOne runs bin against one fixture file and writes its stdout to a
// sibling .expected file.
func generateOne(ctx context.Context, bin, dir, name string) error {
	src := filepath.Join(dir, name)
	cmd := exec.CommandContext(ctx, "go", "run", bin, src)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = log.Writer()
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%v: %w", name, err)
	}
	dst := strings.TrimSuffix(src, ".3rd") + ".expected"
	return ioutil.WriteFile(dst, stdout.Bytes(), 0644)
}
