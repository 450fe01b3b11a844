package server

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/conneroisu/forge/internal/theme"
)

// themePage renders the theme creator page for a state snapshot. Dynamic
// values are escaped; the script keeps the page in sync over /ws.
func themePage(state ThemeState) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder

		b.WriteString(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Forge Theme Creator</title>
<style>` + pageCSS + `</style>
</head>
`)
		fmt.Fprintf(&b, `<body data-mode="%s">
<main id="forge-app">
<header><h1>Forge Theme Creator</h1>
<div id="modes">`, templ.EscapeString(string(state.Mode)))

		for _, mode := range theme.Modes {
			active := ""
			if mode == state.Mode {
				active = ` class="active"`
			}
			fmt.Fprintf(&b, `<button type="button" data-mode="%[1]s"%[2]s>%[1]s</button>`,
				templ.EscapeString(string(mode)), active)
		}
		b.WriteString("</div></header>\n")

		for _, category := range theme.Categories {
			writePresetGroup(&b, category, state.Draft.Markers)
		}

		fmt.Fprintf(&b, `<section id="colors"><h2>Colors <small>%s</small></h2><ul>`, templ.EscapeString(string(state.Mode)))
		for _, p := range state.Pickers {
			writeColorItem(&b, p)
		}
		b.WriteString("</ul></section>\n")

		writeScaleGroup(&b, "radius", "Radius", state.Draft.Radius.Map(), theme.RadiusKeys)
		writeScaleGroup(&b, "spacing", "Spacing", state.Draft.Spacing.Map(), theme.SpacingKeys)

		checked := ""
		if state.Draft.ShadowsEnabled {
			checked = " checked"
		}
		fmt.Fprintf(&b, `<section id="typography"><h2>Font</h2>
<input type="text" id="font-family" value="%s" spellcheck="false">
<label><input type="checkbox" id="shadows"%s> Shadows</label>
<button type="button" id="reset">Reset</button>
</section>
`, templ.EscapeString(state.Draft.FontFamily), checked)

		copyLabel := "Copy"
		if state.Copied {
			copyLabel = "Copied!"
		}
		fmt.Fprintf(&b, `<section id="code"><h2>Code <small id="changes">%d changes</small></h2>
<button type="button" id="copy">%s</button>
<pre id="snippet">%s</pre>
</section>
</main>
`, state.Count, copyLabel, templ.EscapeString(state.Snippet))
		b.WriteString("<script>" + pageJS + "</script>\n</body>\n</html>\n")

		_, err := io.WriteString(w, b.String())
		return err
	})
}

// writeColorItem renders one token row. Opaque tokens get HSL sliders; the
// text input accepts any value the token allows.
func writeColorItem(b *strings.Builder, p PickerState) {
	key := templ.EscapeString(string(p.Key))
	value := templ.EscapeString(p.Value)

	fmt.Fprintf(b, `<li data-key="%s"><span class="swatch" style="background:%s"></span><code>%s</code> `, key, value, key)
	fmt.Fprintf(b, `<input type="text" class="color-value" data-key="%s" value="%s" spellcheck="false">`, key, value)
	if p.Enabled {
		fmt.Fprintf(b, `<span class="sliders"><input type="range" class="hsl-h" min="0" max="360" value="%d"><input type="range" class="hsl-s" min="0" max="100" value="%d"><input type="range" class="hsl-l" min="0" max="100" value="%d"></span>`,
			p.HSL.H, p.HSL.S, p.HSL.L)
		fmt.Fprintf(b, ` <small class="hsl">%s</small>`, templ.EscapeString(p.HSL.String()))
	} else {
		b.WriteString(` <small class="hsl disabled">alpha</small>`)
	}
	b.WriteString("</li>")
}

func writeScaleGroup[K ~string](b *strings.Builder, id, title string, values map[string]string, keys []K) {
	fmt.Fprintf(b, `<section class="scale" id="%s"><h2>%s</h2>`, id, title)
	for _, k := range keys {
		key := templ.EscapeString(string(k))
		fmt.Fprintf(b, `<label>%s <input type="text" data-scale="%s" data-key="%s" value="%s" size="8"></label>`,
			key, id, key, templ.EscapeString(values[string(k)]))
	}
	b.WriteString("</section>\n")
}

func writePresetGroup(b *strings.Builder, category theme.Category, markers theme.Markers) {
	infos, err := theme.ListPresets(category)
	if err != nil {
		return
	}
	selected := map[theme.Category]string{
		theme.CategoryColor:   markers.Color,
		theme.CategoryRadius:  markers.Radius,
		theme.CategorySpacing: markers.Spacing,
		theme.CategoryFont:    markers.Font,
	}[category]

	fmt.Fprintf(b, `<section class="presets" id="presets-%[1]s"><h2>%[1]s</h2>`, templ.EscapeString(string(category)))
	for _, info := range infos {
		active := ""
		if info.ID == selected {
			active = ` class="active"`
		}
		fmt.Fprintf(b, `<button type="button" data-category="%s" data-id="%s"%s>%s</button>`,
			templ.EscapeString(string(category)),
			templ.EscapeString(info.ID),
			active,
			templ.EscapeString(info.Label))
	}
	b.WriteString("</section>\n")
}

const pageCSS = `body{font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,sans-serif;margin:0;background:#F9FAFB;color:#111827}
body[data-mode=dark]{background:#0A0A0A;color:#FAFAFA}
main{max-width:960px;margin:0 auto;padding:24px}
header{display:flex;justify-content:space-between;align-items:center}
button{margin:2px;padding:6px 12px;border:1px solid #D1D5DB;border-radius:8px;background:transparent;color:inherit;cursor:pointer}
button.active{border-color:#8B5CF6;background:#8B5CF620}
.swatch{display:inline-block;width:14px;height:14px;border-radius:4px;border:1px solid #9CA3AF;vertical-align:middle;margin-right:6px}
.hsl.disabled{opacity:.4}
.color-value{width:150px;font-family:monospace}
.sliders input{width:70px;vertical-align:middle}
.scale label{display:inline-block;margin:4px 12px 4px 0}
input[type=text]{padding:4px 6px;border:1px solid #D1D5DB;border-radius:6px;background:transparent;color:inherit}
#font-family{width:60%}
ul{list-style:none;padding:0;columns:2}
pre{background:#111827;color:#F9FAFB;padding:16px;border-radius:8px;overflow:auto}`

const pageJS = `(function(){
var post=function(path,body){return fetch(path,{method:'POST',headers:{'Content-Type':'application/json'},body:JSON.stringify(body||{})})};
var mode=function(){return document.body.dataset.mode};
document.querySelectorAll('[data-category]').forEach(function(el){el.addEventListener('click',function(){post('/api/theme/preset',{category:el.dataset.category,id:el.dataset.id}).then(function(){location.reload()})})});
document.querySelectorAll('#modes [data-mode]').forEach(function(el){el.addEventListener('click',function(){post('/api/view/mode',{mode:el.dataset.mode}).then(function(){location.reload()})})});
document.querySelectorAll('#colors li').forEach(function(li){
var key=li.dataset.key,text=li.querySelector('.color-value');
text.addEventListener('change',function(){post('/api/theme/color',{mode:mode(),key:key,value:text.value.trim()})});
var h=li.querySelector('.hsl-h'),s=li.querySelector('.hsl-s'),l=li.querySelector('.hsl-l');
if(!h){return}
[h,s,l].forEach(function(el){el.addEventListener('input',function(){post('/api/theme/color',{mode:mode(),key:key,hsl:{h:+h.value,s:+s.value,l:+l.value}})})})});
document.querySelectorAll('[data-scale]').forEach(function(el){el.addEventListener('change',function(){post('/api/theme/'+el.dataset.scale,{key:el.dataset.key,value:el.value})})});
var font=document.getElementById('font-family');
font.addEventListener('change',function(){post('/api/theme/font',{family:font.value})});
var shadows=document.getElementById('shadows');
shadows.addEventListener('change',function(){post('/api/theme/shadows',{enabled:shadows.checked})});
document.getElementById('reset').addEventListener('click',function(){post('/api/theme/reset',{}).then(function(){location.reload()})});
var copy=document.getElementById('copy');
copy.addEventListener('click',function(){post('/api/theme/copy',{})});
var keep=function(el,v){if(el&&document.activeElement!==el){el.value=v}};
var apply=function(st){
document.getElementById('snippet').textContent=st.snippet;
document.getElementById('changes').textContent=st.changeCount+' changes';
document.body.dataset.mode=st.mode;
(st.pickers||[]).forEach(function(p){var li=document.querySelector('#colors li[data-key="'+p.key+'"]');if(!li){return}
li.querySelector('.swatch').style.background=p.value;keep(li.querySelector('.color-value'),p.value);
if(p.enabled){keep(li.querySelector('.hsl-h'),p.hsl.h);keep(li.querySelector('.hsl-s'),p.hsl.s);keep(li.querySelector('.hsl-l'),p.hsl.l);
var t=li.querySelector('.hsl');if(t){t.textContent='hsl('+p.hsl.h+', '+p.hsl.s+'%, '+p.hsl.l+'%)'}}});
document.querySelectorAll('[data-scale]').forEach(function(el){keep(el,(st.draft[el.dataset.scale]||{})[el.dataset.key]||'')});
keep(font,st.draft.fontFamily);shadows.checked=st.draft.shadowsEnabled};
var ws=new WebSocket((location.protocol==='https:'?'wss://':'ws://')+location.host+'/ws');
ws.onmessage=function(ev){var m=JSON.parse(ev.data);
if(m.type==='theme'&&m.state){apply(m.state)}
if(m.type==='copied'){copy.textContent=m.copied?'Copied!':'Copy'}};
})();`
