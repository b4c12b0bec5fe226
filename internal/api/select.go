package api

// preferredModels is the fixed preference order used to pick a default
// test target when the server advertises more than one model. Known
// chat models rank above whatever else the server exposes.
var preferredModels = []string{
	"claude-sonnet-4.5",
	"gpt-4o",
	"gpt-5",
	"claude-sonnet-4",
	"gpt-4o-mini",
}

// SelectPreferredModel picks the model to test against. The preference
// list is scanned in declared order and the first preference present in
// models wins, matching on id or family; within one preference the
// first matching list entry wins. When no preference matches, the first
// model in the list is returned. ok is false only for an empty list.
func SelectPreferredModel(models []ModelDescriptor) (ModelDescriptor, bool) {
	if len(models) == 0 {
		return ModelDescriptor{}, false
	}
	for _, pref := range preferredModels {
		for _, m := range models {
			if m.ID == pref || m.Family == pref {
				return m, true
			}
		}
	}
	return models[0], true
}
