package replacer

import "strings"

type toolTipRow struct {
	short, long, desc string
}

var frameToolTipRows = []toolTipRow{
	{"%s", "%{title}", "Title"},
	{"%l", "%{album}", "Album"},
	{"%a", "%{artist}", "Artist"},
	{"%c", "%{comment}", "Comment"},
	{"%y", "%{year}", "Year"},
	{"%t", "%{track}", "Track &quot;01&quot;"},
	{"%t", "%{track.3}", "Track &quot;001&quot;"},
	{"%T", "%{tracknumber}", "Track &quot;1&quot;"},
	{"%g", "%{genre}", "Genre"},
	{"", `%{"t1"title"t2"}...`, "Prepend t1/append t2 if not empty"},
}

var trackToolTipRows = []toolTipRow{
	{"%f", "%{file}", "Filename"},
	{"%p", "%{filepath}", "Absolute path to file"},
	{"", "%{modificationdate}", "Modification date"},
	{"%u", "%{url}", "URL"},
	{"", "%{dirname}", "Directory name"},
	{"%d", "%{duration}", "Length &quot;M:S&quot;"},
	{"%D", "%{seconds}", "Length &quot;S&quot;"},
	{"%n", "%{tracks}", "Number of tracks"},
	{"%e", "%{extension}", "Extension"},
	{"%O", "%{tag1}", "Tag 1"},
	{"%o", "%{tag2}", "Tag 2"},
	{"%b", "%{bitrate}", "Bitrate"},
	{"%v", "%{vbr}", "VBR"},
	{"%r", "%{samplerate}", "Samplerate"},
	{"%m", "%{mode}", "Stereo, Joint Stereo"},
	{"%C", "%{channels}", "Channels"},
	{"%k", "%{codec}", "Codec"},
	{"%w", "%{marked}", "Marked"},
	{"%ha...", "%h{artist}...", "Escape for HTML"},
}

func writeToolTip(b *strings.Builder, rows []toolTipRow) {
	for _, r := range rows {
		b.WriteString("<tr><td>" + r.short + "</td><td>" + r.long + "</td><td>" + r.desc + "</td></tr>\n")
	}
}

// FrameToolTip returns an HTML table describing the frame codes. With
// onlyRows the surrounding table element is omitted.
func FrameToolTip(onlyRows bool) string {
	var b strings.Builder
	if !onlyRows {
		b.WriteString("<table>\n")
	}
	writeToolTip(&b, frameToolTipRows)
	if !onlyRows {
		b.WriteString("</table>\n")
	}
	return b.String()
}

// TrackToolTip is FrameToolTip extended by the file codes.
func TrackToolTip(onlyRows bool) string {
	var b strings.Builder
	if !onlyRows {
		b.WriteString("<table>\n")
	}
	writeToolTip(&b, frameToolTipRows)
	writeToolTip(&b, trackToolTipRows)
	if !onlyRows {
		b.WriteString("</table>\n")
	}
	return b.String()
}
