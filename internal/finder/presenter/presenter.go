// Package presenter renders sessions as stable, line-oriented chat text.
package presenter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/voice-finder/server/internal/finder/model"
	"github.com/voice-finder/server/internal/finder/ranking"
)

const (
	BucketCap        = 5
	BucketCapListAll = 50
	HighQualityCap   = 20
)

// Presenter renders sessions. It holds no state besides its configuration.
type Presenter struct {
	linkBase string
}

func New(linkBase string) *Presenter {
	return &Presenter{linkBase: linkBase}
}

type bucket struct {
	group string
	label string
}

// Render draws the standard and high-quality sections with their gender
// buckets, filtered by the session filter.
func (p *Presenter) Render(s *model.Session) string {
	l := LabelsFor(s.UILanguage)
	ordered := ranking.Order(s.Candidates, s.Scores)

	limit := BucketCap
	if s.Filter.ListAll {
		limit = BucketCapListAll
	}

	buckets := []bucket{
		{model.GroupFemale, l.Female},
		{model.GroupMale, l.Male},
		{model.GroupOther, l.Other},
	}
	switch s.Filter.Gender {
	case model.GenderOnlyFemale:
		buckets = buckets[:1]
	case model.GenderOnlyMale:
		buckets = buckets[1:2]
	}

	var b strings.Builder
	b.WriteString(p.intro(s, l))
	b.WriteString("\n")

	for _, section := range []struct {
		title string
		high  bool
	}{
		{l.Standard, false},
		{l.High, true},
	} {
		shown := sectionVisible(s.Filter.Quality, section.high)
		fmt.Fprintf(&b, "\n### %s\n", section.title)
		for _, bk := range buckets {
			fmt.Fprintf(&b, "**%s:**\n", bk.label)
			n := 0
			if shown {
				for _, c := range ordered {
					if n == limit {
						break
					}
					if c.IsHighQuality() != section.high || c.ResolvedGender() != bk.group {
						continue
					}
					b.WriteString(p.line(c))
					n++
				}
			}
			if n == 0 {
				fmt.Fprintf(&b, "_%s_\n", l.NoVoices)
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(footer(s.Filter.Gender, l))
	return b.String()
}

// RenderLanguages counts the session's candidates per language, most
// common first.
func (p *Presenter) RenderLanguages(s *model.Session) string {
	l := LabelsFor(s.UILanguage)
	counts := map[string]int{}
	for _, c := range s.Candidates {
		lang := c.PrimaryLanguage()
		if lang == "" {
			lang = l.UnknownLanguage
		}
		counts[lang]++
	}
	langs := make([]string, 0, len(counts))
	for lang := range counts {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool {
		if counts[langs[i]] != counts[langs[j]] {
			return counts[langs[i]] > counts[langs[j]]
		}
		return langs[i] < langs[j]
	})

	var b strings.Builder
	fmt.Fprintf(&b, "### %s\n", l.Languages)
	if len(langs) == 0 {
		fmt.Fprintf(&b, "_%s_\n", l.NoVoices)
	}
	for _, lang := range langs {
		fmt.Fprintf(&b, "- %s: %d\n", lang, counts[lang])
	}
	return b.String()
}

// RenderHighQuality lists the session's high-quality candidates by score.
func (p *Presenter) RenderHighQuality(s *model.Session) string {
	l := LabelsFor(s.UILanguage)
	var b strings.Builder
	n := 0
	for _, c := range ranking.Order(s.Candidates, s.Scores) {
		if n == HighQualityCap {
			break
		}
		if !c.IsHighQuality() {
			continue
		}
		if n == 0 {
			b.WriteString(l.HighQualityList + "\n")
		}
		b.WriteString(p.line(c))
		n++
	}
	if n == 0 {
		return l.NoHighQuality + "\n"
	}
	return b.String()
}

// NoResults is the reply when a search found nothing.
func (p *Presenter) NoResults(lang string) string {
	return LabelsFor(lang).NoResults
}

// GenericError is the reply when handling failed.
func (p *Presenter) GenericError(lang string) string {
	return LabelsFor(lang).GenericError
}

func (p *Presenter) intro(s *model.Session, l Labels) string {
	if s.TopUsage {
		return fmt.Sprintf(l.IntroTopUsage, escape(s.Plan.VoiceLanguage))
	}
	return fmt.Sprintf(l.Intro, escape(oneLine(s.Query)))
}

func (p *Presenter) line(c model.Candidate) string {
	var meta []string
	for _, v := range []string{c.PrimaryLanguage(), c.Accent, c.Age} {
		if v = strings.TrimSpace(v); v != "" {
			meta = append(meta, v)
		}
	}
	out := "- " + p.link(c)
	if len(meta) > 0 {
		out += " (" + strings.Join(meta, " · ") + ")"
	}
	return out + "\n"
}

func (p *Presenter) link(c model.Candidate) string {
	name := escape(c.Name)
	if name == "" {
		name = escape(c.VoiceID)
	}
	if p.linkBase == "" {
		return name
	}
	sep := "?"
	if strings.Contains(p.linkBase, "?") {
		sep = "&"
	}
	return fmt.Sprintf("<%s%svoiceId=%s|%s>", p.linkBase, sep, c.VoiceID, name)
}

func sectionVisible(q model.QualityPreference, high bool) bool {
	switch q {
	case model.QualityHighOnly:
		return high
	case model.QualityNoHigh:
		return !high
	}
	return true
}

func footer(g model.GenderFilter, l Labels) string {
	switch g {
	case model.GenderOnlyFemale:
		return l.FooterFemale
	case model.GenderOnlyMale:
		return l.FooterMale
	}
	return l.FooterGeneric
}

var slackEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "|", "¦", "\n", " ")

func escape(s string) string {
	return slackEscaper.Replace(strings.TrimSpace(s))
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
