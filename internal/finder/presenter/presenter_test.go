package presenter

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voice-finder/server/internal/finder/model"
)

const base = "https://elevenlabs.io/app/voice-library"

func voice(id, name, gender, lang string, hq bool) model.Candidate {
	v := model.Voice{VoiceID: id, Name: name, Gender: gender, Language: lang}
	if hq {
		v.HighQualityBaseModelIDs = []string{"eleven_multilingual_v2"}
	}
	return model.Candidate{Voice: v}
}

func session() *model.Session {
	cs := []model.Candidate{
		voice("f1", "Ala", "female", "pl", false),
		voice("m1", "Jan", "male", "pl", true),
		voice("f2", "Ewa", "female", "pl", true),
		voice("o1", "Robo", "", "en", false),
	}
	cs[0].Accent = "polish"
	cs[0].Age = "young"
	return &model.Session{
		ThreadID:   "C1:1",
		Query:      "spokojny  polski\nglos",
		Candidates: cs,
		Scores:     map[string]float64{"f1": 0.5, "m1": 0.9, "f2": 0.7, "o1": 0.1},
		UILanguage: "en",
		Filter:     model.DefaultFilter(),
	}
}

func TestRender_Snapshot(t *testing.T) {
	got := New(base).Render(session())
	want := `Voices for "spokojny polski glos":

### Standard voices
**Female:**
- <https://elevenlabs.io/app/voice-library?voiceId=f1|Ala> (pl · polish · young)
**Male:**
_No voices in this section._
**Other:**
- <https://elevenlabs.io/app/voice-library?voiceId=o1|Robo> (en)

### High-quality voices
**Female:**
- <https://elevenlabs.io/app/voice-library?voiceId=f2|Ewa> (pl)
**Male:**
- <https://elevenlabs.io/app/voice-library?voiceId=m1|Jan> (pl)
**Other:**
_No voices in this section._

Refine with "only female", "only male", "only HQ" or "show all".`
	assert.Equal(t, want, got)
}

func TestRender_Idempotent(t *testing.T) {
	p := New(base)
	s := session()
	assert.Equal(t, p.Render(s), p.Render(s))
	assert.Equal(t, "f1", s.Candidates[0].VoiceID, "render does not reorder the session")
}

func TestRender_GenderFilterShowsOneBucket(t *testing.T) {
	s := session()
	s.UILanguage = "pl"
	s.Filter.Gender = model.GenderOnlyFemale
	got := New(base).Render(s)

	assert.Equal(t, 2, strings.Count(got, "**Kobiece:**"))
	assert.NotContains(t, got, "**Męskie:**")
	assert.NotContains(t, got, "**Inne:**")
	assert.Contains(t, got, "voiceId=f1|Ala")
	assert.Contains(t, got, "voiceId=f2|Ewa")
	assert.NotContains(t, got, "Jan")
	assert.True(t, strings.HasSuffix(got, LabelsFor("pl").FooterFemale))
}

func TestRender_HighOnlyEmptiesStandardSection(t *testing.T) {
	s := session()
	s.Filter = model.FilterState{Gender: model.GenderOnlyMale, Quality: model.QualityHighOnly}
	got := New(base).Render(s)

	want := `Voices for "spokojny polski glos":

### Standard voices
**Male:**
_No voices in this section._

### High-quality voices
**Male:**
- <https://elevenlabs.io/app/voice-library?voiceId=m1|Jan> (pl)

Showing male voices only. Say "any gender" to see everyone.`
	assert.Equal(t, want, got)
}

func TestRender_NoHighEmptiesHighSection(t *testing.T) {
	s := session()
	s.Filter.Quality = model.QualityNoHigh
	got := New(base).Render(s)
	high := got[strings.Index(got, "### High-quality voices"):]
	assert.Equal(t, 3, strings.Count(high, "_No voices in this section._"))
}

func TestRender_Caps(t *testing.T) {
	s := &model.Session{Query: "many", Scores: map[string]float64{}, UILanguage: "en", Filter: model.DefaultFilter()}
	for i := 0; i < 60; i++ {
		s.Candidates = append(s.Candidates, voice(fmt.Sprintf("f%02d", i), fmt.Sprintf("F%02d", i), "female", "en", false))
	}
	p := New(base)
	assert.Equal(t, BucketCap, strings.Count(p.Render(s), "- <"))

	s.Filter.ListAll = true
	assert.Equal(t, BucketCapListAll, strings.Count(p.Render(s), "- <"))
}

func TestRender_OrderByScore(t *testing.T) {
	s := session()
	s.Candidates = append(s.Candidates, voice("f3", "Zofia", "female", "pl", false))
	s.Scores["f3"] = 0.95
	got := New(base).Render(s)
	assert.Less(t, strings.Index(got, "Zofia"), strings.Index(got, "Ala"))
}

func TestRender_TopUsageIntro(t *testing.T) {
	s := session()
	s.TopUsage = true
	s.Plan.VoiceLanguage = "pl"
	s.UILanguage = "pl"
	got := New(base).Render(s)
	assert.True(t, strings.HasPrefix(got, "Najczęściej używane głosy dla języka `pl`:\n"))
}

func TestLinkEscaping(t *testing.T) {
	c := voice("x1", "A|B <C> & D", "", "", false)
	assert.Equal(t, "- <https://h/lib?a=1&voiceId=x1|A¦B &lt;C&gt; &amp; D>\n", New("https://h/lib?a=1").line(c))
	assert.Equal(t, "- x1\n", New("").line(voice("x1", "", "", "", false)))
}

func TestRender_EscapesQuery(t *testing.T) {
	s := session()
	s.Query = "<!channel> calm <https://x.test|narrator> & co"
	got := New(base).Render(s)
	first := strings.SplitN(got, "\n", 2)[0]
	assert.Equal(t, `Voices for "&lt;!channel&gt; calm &lt;https://x.test¦narrator&gt; &amp; co":`, first)
	assert.NotContains(t, got, "<!channel>")
}

func TestRenderLanguages(t *testing.T) {
	s := session()
	s.Candidates = append(s.Candidates, voice("u1", "Anon", "", "", false), voice("e2", "Bob", "male", "en", false))
	got := New(base).RenderLanguages(s)
	assert.Equal(t, "### Languages\n- pl: 3\n- en: 2\n- unknown: 1\n", got)

	empty := &model.Session{UILanguage: "de"}
	assert.Equal(t, "### Sprachen\n_Keine Stimmen in diesem Abschnitt._\n", New(base).RenderLanguages(empty))
}

func TestRenderHighQuality(t *testing.T) {
	got := New(base).RenderHighQuality(session())
	want := "High-quality voices in this list:\n" +
		"- <https://elevenlabs.io/app/voice-library?voiceId=m1|Jan> (pl)\n" +
		"- <https://elevenlabs.io/app/voice-library?voiceId=f2|Ewa> (pl)\n"
	assert.Equal(t, want, got)

	s := session()
	s.Candidates = s.Candidates[:1]
	assert.Equal(t, "None of these voices are high quality.\n", New(base).RenderHighQuality(s))
}

func TestRenderHighQuality_Cap(t *testing.T) {
	s := &model.Session{Scores: map[string]float64{}}
	for i := 0; i < 30; i++ {
		s.Candidates = append(s.Candidates, voice(fmt.Sprintf("h%d", i), "H", "male", "en", true))
	}
	assert.Equal(t, HighQualityCap, strings.Count(New(base).RenderHighQuality(s), "- <"))
}

func TestLabelsFor(t *testing.T) {
	require.Equal(t, labels["en"], LabelsFor("xx"))
	require.Equal(t, labels["pl"], LabelsFor("pl-PL"))
	for lang, l := range labels {
		assert.NotEmpty(t, l.NoVoices, lang)
		assert.Contains(t, l.Intro, "%s", lang)
		assert.Contains(t, l.IntroTopUsage, "%s", lang)
	}
}
