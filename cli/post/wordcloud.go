package post

import (
	"fmt"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/bbalet/stopwords"
	"github.com/psykhi/wordclouds"
	"github.com/spf13/cobra"
	"github.com/zvonler/pitchpulse/configuration"
	"github.com/zvonler/pitchpulse/database"
	"github.com/zvonler/pitchpulse/model"
	"gopkg.in/yaml.v2"
)

var (
	cloudOutput   string
	cloudStyle    string
	stopwordsFile string
	maxWords      int
)

var DefaultColors = []color.RGBA{
	{0x1b, 0x1b, 0x1b, 0xff},
	{0x48, 0x48, 0x4B, 0xff},
	{0x59, 0x3a, 0xee, 0xff},
	{0x65, 0xCD, 0xFA, 0xff},
	{0x70, 0xD6, 0xBF, 0xff},
}

type Conf struct {
	FontMaxSize     int    `yaml:"font_max_size"`
	FontMinSize     int    `yaml:"font_min_size"`
	RandomPlacement bool   `yaml:"random_placement"`
	FontFile        string `yaml:"font_file"`
	Colors          []color.RGBA
	BackgroundColor color.RGBA `yaml:"background_color"`
	Width           int
	Height          int
	Mask            MaskConf
	SizeFunction    *string `yaml:"size_function"`
	Debug           bool
}

type MaskConf struct {
	File  string
	Color color.RGBA
}

var DefaultConf = Conf{
	FontMaxSize:     700,
	FontMinSize:     10,
	RandomPlacement: false,
	FontFile:        "./fonts/roboto/Roboto-Regular.ttf",
	Colors:          DefaultColors,
	BackgroundColor: color.RGBA{255, 255, 255, 255},
	Width:           4096,
	Height:          4096,
	Mask: MaskConf{"", color.RGBA{
		R: 0,
		G: 0,
		B: 0,
		A: 0,
	}},
	Debug: false,
}

func initWordcloudCommand() *cobra.Command {
	wordcloudCommand := &cobra.Command{
		Use:   "wordcloud <post_id | post_URL>...",
		Short: "Create a word cloud from the comments in the post(s)",
		Args:  cobra.MinimumNArgs(1),
		Run:   runWordcloudCommand,
	}

	wordcloudCommand.Flags().StringVarP(&cloudOutput, "output", "o", "wordcloud.png", "Path to output image")
	wordcloudCommand.Flags().StringVar(&cloudStyle, "style", "wordcloud.yaml", "Path to word cloud style file")
	wordcloudCommand.Flags().StringVar(&stopwordsFile, "stopwords", "", "Additional newline separated stop words")
	wordcloudCommand.Flags().IntVar(&maxWords, "max-words", 200, "Number of words to draw")

	return wordcloudCommand
}

var wordRe = regexp.MustCompile("[A-Za-z]+")

// countWords tallies the lower-cased words of three or more letters in
// bodies, ignoring stop words.
func countWords(bodies []string) map[string]int {
	counts := map[string]int{}
	for _, body := range bodies {
		relevant := stopwords.CleanString(body, "en", true)
		for _, w := range wordRe.FindAllString(relevant, -1) {
			lw := strings.ToLower(w)
			if len(lw) >= 3 {
				counts[lw] += 1
			}
		}
	}
	return counts
}

// topWords keeps the n most frequent words. Ties are broken alphabetically.
func topWords(counts map[string]int, n int) map[string]int {
	wordList := make([]string, 0, len(counts))
	for w := range counts {
		wordList = append(wordList, w)
	}
	sort.Slice(wordList, func(i, j int) bool {
		if counts[wordList[i]] != counts[wordList[j]] {
			return counts[wordList[i]] > counts[wordList[j]]
		}
		return wordList[i] < wordList[j]
	})
	if len(wordList) > n {
		wordList = wordList[:n]
	}

	top := make(map[string]int, len(wordList))
	for _, w := range wordList {
		top[w] = counts[w]
	}
	return top
}

// loadConf reads a style file over the defaults. Relative font and mask
// paths are taken relative to the style file.
func loadConf(path string) (conf Conf, err error) {
	conf = DefaultConf
	var content []byte
	if content, err = os.ReadFile(path); err != nil {
		return
	}
	if err = yaml.Unmarshal(content, &conf); err != nil {
		return
	}

	dir := filepath.Dir(path)
	if conf.FontFile != "" && !filepath.IsAbs(conf.FontFile) {
		conf.FontFile = filepath.Join(dir, conf.FontFile)
	}
	if conf.Mask.File != "" && !filepath.IsAbs(conf.Mask.File) {
		conf.Mask.File = filepath.Join(dir, conf.Mask.File)
	}
	return
}

func runWordcloudCommand(cmd *cobra.Command, args []string) {
	var err error
	var sdb *database.ScraperDB
	var post model.StoredPost
	var bodies []string

	if stopwordsFile != "" {
		stopwords.LoadStopWordsFromFile(stopwordsFile, "en", "\n")
	}

	if sdb, err = configuration.OpenExistingDatabase(); err == nil {
		defer sdb.Close()
		for _, postRef := range args {
			if post, err = sdb.FindPost(postRef); err != nil {
				break
			}
			for _, c := range post.Comments {
				bodies = append(bodies, c.Body)
			}
		}
	}

	if err != nil {
		log.Fatal(err)
	}

	displayWords := topWords(countWords(bodies), maxWords)
	log.Printf("Drawing %d words", len(displayWords))

	conf, err := loadConf(cloudStyle)
	if err != nil {
		log.Printf("No usable style file, using defaults: %v", err)
		conf = DefaultConf
	}

	var boxes []*wordclouds.Box
	if conf.Mask.File != "" {
		boxes = wordclouds.Mask(
			conf.Mask.File,
			conf.Width,
			conf.Height,
			conf.Mask.Color)
	}

	colors := make([]color.Color, 0)
	for _, c := range conf.Colors {
		colors = append(colors, c)
	}

	start := time.Now()
	oarr := []wordclouds.Option{wordclouds.FontFile(conf.FontFile),
		wordclouds.FontMaxSize(conf.FontMaxSize),
		wordclouds.FontMinSize(conf.FontMinSize),
		wordclouds.Colors(colors),
		wordclouds.MaskBoxes(boxes),
		wordclouds.Height(conf.Height),
		wordclouds.Width(conf.Width),
		wordclouds.RandomPlacement(conf.RandomPlacement),
		wordclouds.BackgroundColor(conf.BackgroundColor)}
	if conf.SizeFunction != nil {
		oarr = append(oarr, wordclouds.WordSizeFunction(*conf.SizeFunction))
	}
	if conf.Debug {
		oarr = append(oarr, wordclouds.Debug())
	}
	w := wordclouds.NewWordcloud(displayWords,
		oarr...,
	)

	img := w.Draw()
	outputFile, err := os.Create(cloudOutput)
	if err != nil {
		log.Fatal(err)
	}
	defer outputFile.Close()

	if err = png.Encode(outputFile, img); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Done in %v\n", time.Since(start))
}
