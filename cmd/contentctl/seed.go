package main

import (
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kingarthur/content-api/internal/config"
	"github.com/kingarthur/content-api/internal/gallery"
	"github.com/kingarthur/content-api/internal/news"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// newSeedGalleryCmd loads every image under dir into the gallery. The first
// path segment below dir becomes the category, the file name the title.
func newSeedGalleryCmd(cfg *config.Config) *cobra.Command {
	var wipe bool

	cmd := &cobra.Command{
		Use:   "seed-gallery <dir>",
		Short: "Import a directory tree of images as gallery items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			root := args[0]

			svcs, err := connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer svcs.close()

			if wipe {
				count, err := svcs.gallery.DeleteAll(ctx)
				if err != nil {
					return fmt.Errorf("wipe gallery: %w", err)
				}
				fmt.Printf("wiped %d existing gallery items\n", count)
			}

			seeded := 0
			err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(path))] {
					return nil
				}

				rel, err := filepath.Rel(root, path)
				if err != nil {
					return err
				}
				category := "General"
				if parts := strings.Split(filepath.ToSlash(rel), "/"); len(parts) > 1 {
					category = parts[0]
				}

				f, err := os.Open(path)
				if err != nil {
					return err
				}
				defer f.Close()

				info, err := f.Stat()
				if err != nil {
					return err
				}

				_, err = svcs.gallery.Create(ctx, gallery.CreateInput{
					Title:    titleFromFilename(d.Name()),
					Category: category,
					Image: gallery.ImageUpload{
						Reader:      f,
						Size:        info.Size(),
						Filename:    d.Name(),
						ContentType: mime.TypeByExtension(strings.ToLower(filepath.Ext(path))),
					},
				})
				if err != nil {
					return fmt.Errorf("seed %s: %w", rel, err)
				}
				seeded++
				fmt.Printf("seeded %s (%s)\n", rel, category)
				return nil
			})
			if err != nil {
				return err
			}

			fmt.Printf("seeded %d gallery items\n", seeded)
			return nil
		},
	}

	cmd.Flags().BoolVar(&wipe, "wipe", false, "delete all existing gallery items first")
	return cmd
}

// newSeedNewsCmd inserts a small set of fixture articles, attaching an image
// when a file of the same slug exists under dir.
func newSeedNewsCmd(cfg *config.Config) *cobra.Command {
	var wipe bool

	cmd := &cobra.Command{
		Use:   "seed-news [dir]",
		Short: "Insert fixture news articles, with images from dir when present",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			imageDir := ""
			if len(args) == 1 {
				imageDir = args[0]
			}

			svcs, err := connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer svcs.close()

			if wipe {
				count, err := svcs.news.DeleteAll(ctx)
				if err != nil {
					return fmt.Errorf("wipe news: %w", err)
				}
				fmt.Printf("wiped %d existing news items\n", count)
			}

			for _, fixture := range newsFixtures {
				in := news.CreateInput{
					Title:     fixture.title,
					Content:   fixture.content,
					Excerpt:   fixture.excerpt,
					Published: true,
				}

				if imageDir != "" {
					if upload, closeFn := findFixtureImage(imageDir, fixture.slug); upload != nil {
						in.Image = upload
						defer closeFn()
					}
				}

				if _, err := svcs.news.Create(ctx, in); err != nil {
					return fmt.Errorf("seed %q: %w", fixture.title, err)
				}
				fmt.Printf("seeded %q\n", fixture.title)
			}

			fmt.Printf("seeded %d news items\n", len(newsFixtures))
			return nil
		},
	}

	cmd.Flags().BoolVar(&wipe, "wipe", false, "delete all existing news items first")
	return cmd
}

type newsFixture struct {
	slug    string
	title   string
	excerpt string
	content string
}

var newsFixtures = []newsFixture{
	{
		slug:    "pharmaceutical-expansion",
		title:   "Expanding Our Pharmaceutical Import & Export Network",
		excerpt: "New partnerships extend our pharmaceutical supply chain across three continents.",
		content: "King Arthur Capital has signed agreements with contract manufacturers and distributors that extend our pharmaceutical import and export network across Asia, Europe, and the Middle East.",
	},
	{
		slug:    "healthcare-investment",
		title:   "Investment in Multi-Specialty Healthcare Facilities",
		excerpt: "Backing hospitals and diagnostic laboratories in growth markets.",
		content: "Our healthcare facilities program is funding the development of multi-specialty hospitals and advanced diagnostic laboratories, with the first sites breaking ground this year.",
	},
	{
		slug:    "commodities-update",
		title:   "Commodities Desk Update: Energy and Metals",
		excerpt: "Crude oil, LPG, aviation fuel, and copper cathode supply lines remain strong.",
		content: "The commodities desk reports steady volumes across crude oil, liquefied petroleum gas, Jet A1 aviation fuel, copper cathodes, and aluminum products, alongside new renewable energy projects.",
	},
}

// findFixtureImage looks for slug.<ext> under dir and, when found, returns an
// upload plus a function closing the underlying file.
func findFixtureImage(dir, slug string) (*news.ImageUpload, func()) {
	for ext := range imageExtensions {
		path := filepath.Join(dir, slug+ext)
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		info, err := f.Stat()
		if err != nil {
			_ = f.Close()
			continue
		}
		return &news.ImageUpload{
			Reader:      f,
			Size:        info.Size(),
			Filename:    filepath.Base(path),
			ContentType: mime.TypeByExtension(ext),
		}, func() { _ = f.Close() }
	}
	return nil, nil
}

// titleFromFilename turns "crude-oil_2.jpg" into "Crude Oil 2".
func titleFromFilename(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	words := strings.Fields(base)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
