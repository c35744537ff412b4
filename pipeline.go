package bmtobmp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/bmtobmp/bm"
)

// findPalette returns the palette file to use for a BM file with the given
// base name: a palette with a matching name wins, otherwise a sole palette
// shared by the whole directory.
func findPalette(dir, base string) (string, error) {
	d, err := os.Open(dir)
	if err != nil {
		return "", err
	}
	defer d.Close()

	files, err := d.Readdirnames(0)
	if err != nil {
		return "", err
	}

	var palettes []string
	for _, file := range files {
		if !strings.EqualFold(filepath.Ext(file), palExtension) {
			continue
		}
		if strings.EqualFold(strings.TrimSuffix(file, filepath.Ext(file)), base) {
			return filepath.Join(dir, file), nil
		}
		palettes = append(palettes, file)
	}

	if len(palettes) == 1 {
		return filepath.Join(dir, palettes[0]), nil
	}

	return "", nil
}

func (c *Converter) findDirectories(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(dir string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a directory
			if !info.Mode().IsDir() {
				return nil
			}

			select {
			case out <- dir:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (c *Converter) convertOne(dir, file string) error {
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))

	palette, err := findPalette(dir, base)
	if err != nil {
		return err
	}
	if palette == "" {
		c.logger.Printf("No palette for \"%s\"\n", file)
		return nil
	}

	crc, err := crcFiles(file, palette)
	if err != nil {
		return err
	}

	if c.db != nil {
		path, err := c.db.FindByCRC(crc)
		if err != nil {
			return err
		}
		if path != "" {
			return nil
		}
	}

	f, err := os.Open(file)
	if err != nil {
		return err
	}
	config, err := bm.DecodeConfig(f)
	f.Close()
	if err != nil {
		return err
	}

	out := filepath.Join(dir, base)
	if err := c.ConvertFile(file, palette, out); err != nil {
		return err
	}

	c.logger.Printf("Converted \"%s\" using \"%s\"\n", file, palette)

	if c.db != nil {
		info, err := os.Stat(out + outExtension)
		if err != nil {
			return err
		}
		return c.db.Add(crc, out+outExtension, uint32(config.Width), uint32(config.Height), info.Size())
	}

	return nil
}

func (c *Converter) directoryWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for dir := range in {
			if err := filepath.Walk(dir, func(file string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}

				// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
				if info.Name()[0] == '.' {
					if info.Mode().IsDir() {
						return filepath.SkipDir
					}
					return nil
				}

				// Ignore anything that isn't a normal file
				if !info.Mode().IsRegular() {
					return nil
				}

				// Check files are in the "top" directory
				if filepath.Dir(file) != dir {
					return nil
				}

				if !strings.EqualFold(filepath.Ext(file), bmExtension) {
					return nil
				}

				return c.convertOne(dir, file)
			}); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks path converting every BM file that has a usable palette and
// records the results in the catalog.
func (c *Converter) Scan(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	dirs, errc, err := c.findDirectories(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < 10; i++ {
		errc, err := c.directoryWorker(ctx, dirs)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
