// Command msdfatlas renders a font into a distance field atlas.
//
// It writes <out>.png, the glyph layout as <out>.json or <out>.yaml, and the
// raw bitmap as <out>.fontbin. Settings come from an optional TOML
// descriptor and are overridden by flags:
//
//	msdfatlas -config atlas.toml -font Roboto-Regular.ttf -out roboto
//
// A descriptor holds msdfatlas.Config keys plus charset, out and layout:
//
//	font = "Roboto-Regular.ttf"
//	imageType = "mtsdf"
//	emScale = 48
//	charset = "ascii"
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/msdfatlas"
	"github.com/gogpu/msdfatlas/font"
)

// descriptor is the TOML file layout.
type descriptor struct {
	msdfatlas.Config

	Charset string `toml:"charset"`
	Out     string `toml:"out"`
	Layout  string `toml:"layout"`
}

func defaultDescriptor() descriptor {
	return descriptor{
		Config:  msdfatlas.DefaultConfig(),
		Charset: "default",
		Out:     "atlas",
		Layout:  "json",
	}
}

func loadDescriptor(path string) (descriptor, error) {
	d := defaultDescriptor()
	if path == "" {
		return d, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return d, err
	}
	if err := toml.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("%s: %w", path, err)
	}
	// Relative font paths are resolved against the descriptor.
	if d.FontPath != "" && !filepath.IsAbs(d.FontPath) {
		d.FontPath = filepath.Join(filepath.Dir(path), d.FontPath)
	}
	return d, nil
}

func main() {
	var (
		configPath = flag.String("config", "", "TOML descriptor file")
		fontPath   = flag.String("font", "", "font file (overrides descriptor)")
		out        = flag.String("out", "", "output path without extension")
		imageType  = flag.String("type", "", "image type: hardmask, softmask, sdf, psdf, msdf, mtsdf")
		emScale    = flag.Float64("size", 0, "pixels per em")
		pxRange    = flag.Float64("pxrange", 0, "distance range in pixels")
		charset    = flag.String("charset", "", `"default", "ascii" or hex ranges like "20-7E,400-4FF"`)
		layout     = flag.String("layout", "", "layout format: json or yaml")
		threads    = flag.Int("threads", -1, "worker threads")
		cacheDir   = flag.String("cachedir", "", "directory for .fontbin cache files")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		msdfatlas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	d, err := loadDescriptor(*configPath)
	if err != nil {
		log.Fatalf("Failed to load descriptor: %v", err)
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "font":
			d.FontPath = *fontPath
		case "out":
			d.Out = *out
		case "type":
			if err := d.ImageType.UnmarshalText([]byte(*imageType)); err != nil {
				log.Fatal(err)
			}
		case "size":
			d.EmScale = *emScale
		case "pxrange":
			d.PxRange = *pxRange
		case "charset":
			d.Charset = *charset
		case "layout":
			d.Layout = *layout
		case "threads":
			d.Threads = *threads
		case "cachedir":
			d.CacheDir = *cacheDir
		}
	})

	if err := run(d); err != nil {
		log.Fatal(err)
	}
}

func run(d descriptor) error {
	cs, err := font.ParseCharset(d.Charset)
	if err != nil {
		return err
	}
	d.Config.Charset = cs

	format, ext, err := layoutFormat(d.Layout)
	if err != nil {
		return err
	}

	fa, err := msdfatlas.Open(d.Config)
	if err != nil {
		return err
	}
	defer msdfatlas.PurgeOpened()

	if err := fa.SavePNG(d.Out + ".png"); err != nil {
		return fmt.Errorf("save png: %w", err)
	}
	if err := writeLayout(fa, d.Out+ext, format); err != nil {
		return fmt.Errorf("save layout: %w", err)
	}
	if err := writeFontBin(fa, d.Out+msdfatlas.FontBinExt); err != nil {
		return fmt.Errorf("save fontbin: %w", err)
	}

	bmp := fa.Bitmap()
	log.Printf("Atlas saved to %s (%d glyphs, %dx%d %s, %s)\n",
		d.Out, fa.Len(), bmp.Width, bmp.Height, d.ImageType, bmp.TextureFormat())
	return nil
}

func layoutFormat(name string) (msdfatlas.LayoutFormat, string, error) {
	switch strings.ToLower(name) {
	case "", "json":
		return msdfatlas.LayoutJSON, ".json", nil
	case "yaml", "yml":
		return msdfatlas.LayoutYAML, ".yaml", nil
	}
	return 0, "", fmt.Errorf("unknown layout format %q", name)
}

func writeLayout(fa *msdfatlas.FontAtlas, path string, format msdfatlas.LayoutFormat) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	l := fa.Layout()
	if err := l.Encode(f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeFontBin(fa *msdfatlas.FontAtlas, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bmp := fa.Bitmap()
	w := bufio.NewWriter(f)
	err = msdfatlas.WriteFontBin(w, &msdfatlas.FontBin{
		Width:  bmp.Width,
		Height: bmp.Height,
		Layout: fa.LayoutHash(),
		Data:   bmp.Bytes(),
	})
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
