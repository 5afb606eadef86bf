// Package faq holds the static copy shown next to the download form.
package faq

// Entry is one frequently asked question
type Entry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Entries is the list of frequently asked questions, in display order
var Entries = []Entry{
	{
		Question: "What formats are supported?",
		Answer:   "We support MP3, AAC, and WAV formats with various bitrate options for optimal quality.",
	},
	{
		Question: "Is this service free?",
		Answer:   "Yes, the service is completely free to use.",
	},
	{
		Question: "How long does conversion take?",
		Answer:   "Conversion typically takes 1-3 minutes depending on the file size and selected quality.",
	},
}

// CopyrightNotice is shown under the form
const CopyrightNotice = "For personal use only. Please respect copyright and intellectual property rights."
