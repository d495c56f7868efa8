package vorbis

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/simonhull/tagframe/internal/types"
)

// ChaptersName is the name of the pseudo frame which shows the
// CHAPTERxxx and CHAPTERxxxNAME comments as a synchronized list.
//
//	CHAPTER001=00:00:00.000
//	CHAPTER001NAME=Introduction
//	CHAPTER002=00:05:23.500
//	CHAPTER002NAME=Chapter 1: The Beginning
const ChaptersName = "Chapters"

const chaptersIndex = math.MinInt32

type chapter struct {
	number int
	start  time.Duration
	title  string
}

func isChaptersFrame(f *types.Frame) bool {
	return f.Type == types.TypeOther && f.Name == ChaptersName
}

// chapterKey splits a CHAPTERxxx or CHAPTERxxxNAME key into the chapter
// number and whether it is the name.
func chapterKey(key string) (num int, isName bool, ok bool) {
	key = strings.ToUpper(strings.TrimSpace(key))
	rest, found := strings.CutPrefix(key, "CHAPTER")
	if !found {
		return 0, false, false
	}
	rest, isName = strings.CutSuffix(rest, "NAME")
	if rest == "" {
		return 0, false, false
	}
	num, err := strconv.Atoi(rest)
	if err != nil || num < 0 {
		return 0, false, false
	}
	return num, isName, true
}

// parseChapters collects the chapters of a comment list, sorted by
// number. Chapters without a valid timestamp are dropped.
func parseChapters(comments []string) []chapter {
	byNumber := make(map[int]*chapter)
	starts := make(map[int]string)
	for _, comment := range comments {
		key, value, found := strings.Cut(comment, "=")
		if !found {
			continue
		}
		num, isName, ok := chapterKey(key)
		if !ok {
			continue
		}
		if byNumber[num] == nil {
			byNumber[num] = &chapter{number: num}
		}
		if isName {
			byNumber[num].title = strings.TrimSpace(value)
		} else {
			starts[num] = strings.TrimSpace(value)
		}
	}

	var chapters []chapter
	for num, c := range byNumber {
		start, err := parseChapterTimestamp(starts[num])
		if err != nil {
			continue
		}
		c.start = start
		chapters = append(chapters, *c)
	}
	slices.SortFunc(chapters, func(a, b chapter) int {
		return cmp.Compare(a.number, b.number)
	})
	return chapters
}

// parseChapterTimestamp parses chapter timestamps in various formats:
//   - HH:MM:SS.mmm (hours:minutes:seconds.milliseconds)
//   - MM:SS.mmm (minutes:seconds.milliseconds)
//   - SS.mmm (seconds.milliseconds)
func parseChapterTimestamp(ts string) (time.Duration, error) {
	parts := strings.Split(ts, ":")

	var hours, minutes int
	var seconds float64
	var err error

	switch len(parts) {
	case 3:
		hours, err = strconv.Atoi(parts[0])
		if err != nil {
			return 0, fmt.Errorf("invalid hours in timestamp: %s", ts)
		}
		minutes, err = strconv.Atoi(parts[1])
		if err != nil {
			return 0, fmt.Errorf("invalid minutes in timestamp: %s", ts)
		}
		seconds, err = strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid seconds in timestamp: %s", ts)
		}

	case 2:
		minutes, err = strconv.Atoi(parts[0])
		if err != nil {
			return 0, fmt.Errorf("invalid minutes in timestamp: %s", ts)
		}
		seconds, err = strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid seconds in timestamp: %s", ts)
		}

	case 1:
		seconds, err = strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid seconds in timestamp: %s", ts)
		}

	default:
		return 0, fmt.Errorf("invalid timestamp format: %s", ts)
	}

	if hours < 0 || minutes < 0 || minutes >= 60 || seconds < 0 || seconds >= 60 {
		return 0, fmt.Errorf("timestamp values out of range: %s", ts)
	}

	totalSeconds := float64(hours*3600+minutes*60) + seconds
	return time.Duration(math.Round(totalSeconds*1000)) * time.Millisecond, nil
}

// formatChapterTimestamp formats a start time as HH:MM:SS.mmm.
func formatChapterTimestamp(d time.Duration) string {
	ms := d.Milliseconds()
	return fmt.Sprintf("%02d:%02d:%02d.%03d", ms/3600000, ms/60000%60, ms/1000%60, ms%1000)
}

// chaptersFrame creates the pseudo frame. The data list alternates
// start times in milliseconds and titles and ends with the end time of
// the last chapter and an empty title. end is used as that end time
// when it is after the last start.
func chaptersFrame(chapters []chapter, end time.Duration) types.Frame {
	data := []any{}
	var last time.Duration
	for _, c := range chapters {
		data = append(data, int(c.start.Milliseconds()), c.title)
		last = c.start
	}
	if end > last {
		last = end
	}
	data = append(data, int(last.Milliseconds()), "")

	f := types.NewFrame(types.TypeOther, "", ChaptersName)
	f.Index = chaptersIndex
	f.Fields = []types.Field{
		{ID: types.FieldTimestampFormat, Value: 2},
		{ID: types.FieldContentType, Value: 0},
		{ID: types.FieldDescription, Value: ""},
		{ID: types.FieldData, Value: data},
	}
	return f
}

// chaptersFromFrame extracts the chapters from the data list of the
// pseudo frame. The trailing end time entry is not a chapter.
func chaptersFromFrame(f *types.Frame) []chapter {
	v, _ := f.FieldValue(types.FieldData)
	data, _ := v.([]any)
	var chapters []chapter
	for i := 0; i+1 < len(data); i += 2 {
		ms := types.Field{Value: data[i]}.Int()
		title := types.Field{Value: data[i+1]}.String()
		if i+2 >= len(data) && title == "" {
			break
		}
		chapters = append(chapters, chapter{
			number: len(chapters) + 1,
			start:  time.Duration(ms) * time.Millisecond,
			title:  title,
		})
	}
	return chapters
}

// chapterComments renders chapters as comments.
func chapterComments(chapters []chapter) []string {
	comments := make([]string, 0, 2*len(chapters))
	for i, c := range chapters {
		key := fmt.Sprintf("CHAPTER%03d", i+1)
		comments = append(comments, key+"="+formatChapterTimestamp(c.start))
		if c.title != "" {
			comments = append(comments, key+"NAME="+c.title)
		}
	}
	return comments
}
