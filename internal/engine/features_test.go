package engine

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gridrate/gridrate/internal/domain/rating"
)

// The weight tables and the extractors are maintained in different
// packages; these tests pin them to one shared feature vocabulary.
func TestFeatureVocabulary(t *testing.T) {
	known := map[string]bool{}
	for _, name := range featureNames() {
		known[name] = true
	}

	Convey("Given the extractor vocabulary", t, func() {
		Convey("Then every preset weight references a known feature", func() {
			for _, preset := range rating.PresetNames() {
				weights, err := rating.Preset(preset)
				So(err, ShouldBeNil)
				for component, feats := range weights.Components {
					for feat := range feats {
						So(known[feat], ShouldBeTrue)
						So(component, ShouldNotBeBlank)
					}
				}
			}
		})

		Convey("Then every trait formula references a known feature", func() {
			for _, feats := range rating.TraitFormulas() {
				for feat := range feats {
					So(known[feat], ShouldBeTrue)
				}
			}
		})

		Convey("Then every inverted feature is a known feature", func() {
			for feat := range rating.InvertedFeatures() {
				So(known[feat], ShouldBeTrue)
			}
		})

		Convey("Then every extractor is referenced by a weight table", func() {
			used := map[string]bool{}
			for _, preset := range rating.PresetNames() {
				weights, err := rating.Preset(preset)
				So(err, ShouldBeNil)
				for _, feats := range weights.Components {
					for feat := range feats {
						used[feat] = true
					}
				}
			}
			for _, feats := range rating.TraitFormulas() {
				for feat := range feats {
					used[feat] = true
				}
			}
			for _, name := range featureNames() {
				So(used[name], ShouldBeTrue)
			}
		})
	})
}
