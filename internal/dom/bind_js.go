//go:build js && wasm

package dom

import (
	"strconv"
	"syscall/js"

	"github.com/Zachkp/devfolio/internal/content"
	"github.com/Zachkp/devfolio/internal/page"
)

// Bind routes clicks on the page's data attributes to v:
//
//	data-nav="id"          scroll to a section
//	data-project-open="n"  open project n
//	data-resume-open       open the resume overlay
//	data-menu-toggle       open or close the mobile menu
//	data-overlay-close     close the enclosing overlay
//
// The returned function removes the handler.
func Bind(h *Host, v *page.View, p *content.Portfolio) func() {
	return listen(h.doc, "click", func(ev js.Value) {
		target := ev.Get("target")
		if target.Get("closest").Type() != js.TypeFunction {
			return
		}
		closest := func(sel string) (js.Value, bool) {
			el := target.Call("closest", sel)
			return el, !el.IsNull()
		}

		if el, ok := closest("[data-nav]"); ok {
			ev.Call("preventDefault")
			v.NavigateTo(dataset(el, "nav"))
			return
		}
		if el, ok := closest("[data-project-open]"); ok {
			id, err := strconv.Atoi(dataset(el, "projectOpen"))
			if err != nil {
				logf("bad project id %q", dataset(el, "projectOpen"))
				return
			}
			if proj, found := p.Project(id); found {
				v.OpenProject(proj)
			}
			return
		}
		if _, ok := closest("[data-resume-open]"); ok {
			v.OpenResume()
			return
		}
		if _, ok := closest("[data-menu-toggle]"); ok {
			v.ToggleMenu()
			return
		}
		if _, ok := closest("[data-overlay-close]"); ok {
			if overlay, ok := closest("[data-overlay]"); ok {
				v.CloseOverlay(dataset(overlay, "overlay"))
			}
		}
	}, nil)
}
