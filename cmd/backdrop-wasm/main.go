//go:build js && wasm

// Command backdrop-wasm installs the decorative background on the page that loads it
// and exposes a control object as globalThis.backdrop.
//
// Optional configuration is read from globalThis.backdropConfig, either a JSON string or
// a plain object using the Settings field names plus an optional "layer" object
// ({"zIndex": 2, "opacity": 0.4, "parent": "#hero"}) and "debug": true.
package main

import (
	"syscall/js"

	"github.com/gekko3d/backdrop"
	"github.com/gekko3d/backdrop/platform/web"
	"github.com/gekko3d/backdrop/rt/surface"
	jsoniter "github.com/json-iterator/go"
)

type pageConfig struct {
	Layer *surface.Layer `json:"layer"`
	Debug bool           `json:"debug"`
}

func readConfig() ([]byte, pageConfig) {
	var cfg pageConfig
	v := js.Global().Get("backdropConfig")
	var raw []byte
	switch v.Type() {
	case js.TypeString:
		raw = []byte(v.String())
	case js.TypeObject:
		raw = []byte(js.Global().Get("JSON").Call("stringify", v).String())
	default:
		return nil, cfg
	}
	_ = jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(raw, &cfg)
	return raw, cfg
}

func main() {
	overrides, cfg := readConfig()
	layer := surface.DefaultLayer()
	if cfg.Layer != nil {
		layer = *cfg.Layer
	}

	frames := web.NewAnimationFrames()
	var logger backdrop.Logger = backdrop.NewDefaultLogger("backdrop", cfg.Debug)
	sys := backdrop.New(backdrop.Options{
		Host:      web.NewCanvas(layer),
		Probe:     web.Probe{},
		Overrides: overrides,
		Scheduler: frames,
		Logger:    logger,
	})

	// The exported functions stay installed for the life of the page so that a held
	// reference keeps working after destroy; they just become no-ops.
	var teardown web.Teardown
	teardown.Add(sys.Destroy)
	teardown.Add(frames.Release)
	teardown.Add(func() { js.Global().Delete("backdrop") })

	export := func(name string, fn func(args []js.Value) any) js.Value {
		return js.FuncOf(func(this js.Value, args []js.Value) any { return fn(args) }).Value
	}
	result := func(err error) any {
		if err != nil {
			return err.Error()
		}
		return js.Null()
	}
	number := func(args []js.Value) float64 {
		if len(args) == 0 || args[0].Type() != js.TypeNumber {
			return -1
		}
		return args[0].Float()
	}

	api := js.Global().Get("Object").New()
	api.Set("start", export("start", func([]js.Value) any { sys.Start(); return nil }))
	api.Set("stop", export("stop", func([]js.Value) any { sys.Stop(); return nil }))
	api.Set("destroy", export("destroy", func([]js.Value) any {
		teardown.Run()
		return nil
	}))
	api.Set("setParticleCount", export("setParticleCount", func(args []js.Value) any {
		return result(sys.SetParticleCount(int(number(args))))
	}))
	api.Set("setBlurStrength", export("setBlurStrength", func(args []js.Value) any {
		return result(sys.SetBlurStrength(float32(number(args))))
	}))
	api.Set("setBloomIntensity", export("setBloomIntensity", func(args []js.Value) any {
		return result(sys.SetBloomIntensity(float32(number(args))))
	}))
	api.Set("setDistortionStrength", export("setDistortionStrength", func(args []js.Value) any {
		return result(sys.SetDistortionStrength(float32(number(args))))
	}))
	api.Set("togglePerformance", export("togglePerformance", func([]js.Value) any {
		sys.TogglePerformance()
		return nil
	}))
	api.Set("settings", export("settings", func([]js.Value) any {
		data, err := sys.Settings().JSON()
		if err != nil {
			return js.Null()
		}
		return js.Global().Get("JSON").Call("parse", string(data))
	}))
	api.Set("tier", export("tier", func([]js.Value) any { return sys.Tier().String() }))
	api.Set("state", export("state", func([]js.Value) any { return sys.State().String() }))
	js.Global().Set("backdrop", api)

	start := func() {
		if err := sys.Init(); err != nil {
			logger.Warnf("background disabled: %v", err)
			return
		}
		events := web.Bind(sys)
		if !teardown.Add(events.Release) {
			events.Release()
			return
		}
		if cfg.Debug {
			sys.OnKey("d")
		}
	}
	doc := js.Global().Get("document")
	if doc.Get("readyState").String() == "loading" {
		var onReady js.Func
		onReady = js.FuncOf(func(js.Value, []js.Value) any {
			onReady.Release()
			start()
			return nil
		})
		doc.Call("addEventListener", "DOMContentLoaded", onReady, map[string]any{"once": true})
	} else {
		start()
	}

	select {}
}
