package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// cleanup strips presentation-only markup from a cloned message body.
// The steps run in a fixed order because later ones assume earlier noise
// is gone:
//
//  1. Emoji images become their textual alternate followed by a period,
//     so an emoji ending a sentence terminates a word the way trailing
//     punctuation would instead of being silently dropped.
//  2. Caption paragraphs that are pure UI chrome around embedded media
//     are removed by exact label match.
//  3. Scripts, embedded tables, quote blocks, and the last-edited marker
//     are removed wholesale.
func (e *Extractor) cleanup(body *goquery.Selection) {
	body.Find(e.rules.EmojiSelector).Each(func(_ int, img *goquery.Selection) {
		alt := img.AttrOr(e.rules.EmojiAttr, "")
		img.ReplaceWithNodes(&html.Node{
			Type: html.TextNode,
			Data: alt + ".",
		})
	})

	body.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := strings.TrimSpace(p.Text())
		for _, caption := range e.rules.MediaCaptions {
			if text == caption {
				p.Remove()
				return
			}
		}
	})

	for _, selector := range e.rules.NoisySelectors {
		body.Find(selector).Remove()
	}
}
