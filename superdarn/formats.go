// Package superdarn layers the SuperDARN file types (iqdat, rawacf,
// fitacf, grid, map) on top of the generic DMAP codec: it knows which
// fields each file type carries, validates records against those schemas,
// and exposes records as flat name/value maps convenient for analysis and
// plotting.
package superdarn

import "github.com/superdarn/godarn/dmap"

// Fields maps field names to their DMAP data types.
type Fields map[string]dmap.Type

// Schema describes one SuperDARN file type. Required fields must appear
// in every record. Optional groups are all-or-nothing: records either
// carry a whole group or none of it, depending on the processing options
// the file was produced with (for example `make_grid -ext`).
type Schema struct {
	Name     string
	Required Fields
	Optional []Fields
}

var timeFields = Fields{
	"time.yr": dmap.TypeShort,
	"time.mo": dmap.TypeShort,
	"time.dy": dmap.TypeShort,
	"time.hr": dmap.TypeShort,
	"time.mt": dmap.TypeShort,
	"time.sc": dmap.TypeShort,
	"time.us": dmap.TypeInt,
}

// radarFields are the scalars shared by every radar-level file type
// (iqdat, rawacf, fitacf).
var radarFields = Fields{
	"radar.revision.major": dmap.TypeChar,
	"radar.revision.minor": dmap.TypeChar,
	"origin.code":          dmap.TypeChar,
	"origin.time":          dmap.TypeString,
	"origin.command":       dmap.TypeString,
	"cp":                   dmap.TypeShort,
	"stid":                 dmap.TypeShort,
	"txpow":                dmap.TypeShort,
	"nave":                 dmap.TypeShort,
	"atten":                dmap.TypeShort,
	"lagfr":                dmap.TypeShort,
	"smsep":                dmap.TypeShort,
	"ercod":                dmap.TypeShort,
	"stat.agc":             dmap.TypeShort,
	"stat.lopwr":           dmap.TypeShort,
	"noise.search":         dmap.TypeFloat,
	"noise.mean":           dmap.TypeFloat,
	"channel":              dmap.TypeShort,
	"bmnum":                dmap.TypeShort,
	"bmazm":                dmap.TypeFloat,
	"scan":                 dmap.TypeShort,
	"offset":               dmap.TypeShort,
	"rxrise":               dmap.TypeShort,
	"intt.sc":              dmap.TypeShort,
	"intt.us":              dmap.TypeInt,
	"txpl":                 dmap.TypeShort,
	"mpinc":                dmap.TypeShort,
	"mppul":                dmap.TypeShort,
	"mplgs":                dmap.TypeShort,
	"nrang":                dmap.TypeShort,
	"frang":                dmap.TypeShort,
	"rsep":                 dmap.TypeShort,
	"xcf":                  dmap.TypeShort,
	"tfreq":                dmap.TypeShort,
	"mxpwr":                dmap.TypeInt,
	"lvmax":                dmap.TypeInt,
	"combf":                dmap.TypeString,
	"ptab":                 dmap.TypeShort,
	"ltab":                 dmap.TypeShort,
}

func merge(sets ...Fields) Fields {
	out := Fields{}
	for _, set := range sets {
		for name, t := range set {
			out[name] = t
		}
	}
	return out
}

// Fitacf is the FITACF (fitted autocorrelation function) schema. The
// optional group holds the cross-correlation fields present when the
// radar ran with an interferometer array (xcf flag set).
var Fitacf = Schema{
	Name: "fitacf",
	Required: merge(radarFields, timeFields, Fields{
		"fitacf.revision.major": dmap.TypeInt,
		"fitacf.revision.minor": dmap.TypeInt,
		"noise.sky":             dmap.TypeFloat,
		"noise.lag0":            dmap.TypeFloat,
		"noise.vel":             dmap.TypeFloat,
		"pwr0":                  dmap.TypeFloat,
		"slist":                 dmap.TypeShort,
		"nlag":                  dmap.TypeShort,
		"qflg":                  dmap.TypeChar,
		"gflg":                  dmap.TypeChar,
		"p_l":                   dmap.TypeFloat,
		"p_l_e":                 dmap.TypeFloat,
		"p_s":                   dmap.TypeFloat,
		"p_s_e":                 dmap.TypeFloat,
		"v":                     dmap.TypeFloat,
		"v_e":                   dmap.TypeFloat,
		"w_l":                   dmap.TypeFloat,
		"w_l_e":                 dmap.TypeFloat,
		"w_s":                   dmap.TypeFloat,
		"w_s_e":                 dmap.TypeFloat,
		"sd_l":                  dmap.TypeFloat,
		"sd_s":                  dmap.TypeFloat,
		"sd_phi":                dmap.TypeFloat,
	}),
	Optional: []Fields{{
		"x_qflg":   dmap.TypeChar,
		"x_gflg":   dmap.TypeChar,
		"x_p_l":    dmap.TypeFloat,
		"x_p_l_e":  dmap.TypeFloat,
		"x_p_s":    dmap.TypeFloat,
		"x_p_s_e":  dmap.TypeFloat,
		"x_v":      dmap.TypeFloat,
		"x_v_e":    dmap.TypeFloat,
		"x_w_l":    dmap.TypeFloat,
		"x_w_l_e":  dmap.TypeFloat,
		"x_w_s":    dmap.TypeFloat,
		"x_w_s_e":  dmap.TypeFloat,
		"x_sd_l":   dmap.TypeFloat,
		"x_sd_s":   dmap.TypeFloat,
		"x_sd_phi": dmap.TypeFloat,
		"phi0":     dmap.TypeFloat,
		"phi0_e":   dmap.TypeFloat,
		"elv":      dmap.TypeFloat,
		"elv_low":  dmap.TypeFloat,
		"elv_high": dmap.TypeFloat,
	}},
}

// Rawacf is the RAWACF (raw autocorrelation function) schema.
var Rawacf = Schema{
	Name: "rawacf",
	Required: merge(radarFields, timeFields, Fields{
		"rawacf.revision.major": dmap.TypeInt,
		"rawacf.revision.minor": dmap.TypeInt,
		"thr":                   dmap.TypeFloat,
		"pwr0":                  dmap.TypeFloat,
		"slist":                 dmap.TypeShort,
		"acfd":                  dmap.TypeFloat,
	}),
	Optional: []Fields{{
		"xcfd": dmap.TypeFloat,
	}},
}

// Iqdat is the IQDAT (raw voltage sample) schema.
var Iqdat = Schema{
	Name: "iqdat",
	Required: merge(radarFields, timeFields, Fields{
		"iqdata.revision.major": dmap.TypeInt,
		"iqdata.revision.minor": dmap.TypeInt,
		"seqnum":                dmap.TypeInt,
		"chnnum":                dmap.TypeInt,
		"smpnum":                dmap.TypeInt,
		"skpnum":                dmap.TypeInt,
		"tsc":                   dmap.TypeInt,
		"tus":                   dmap.TypeInt,
		"tatten":                dmap.TypeShort,
		"tnoise":                dmap.TypeFloat,
		"toff":                  dmap.TypeInt,
		"tsze":                  dmap.TypeInt,
		"data":                  dmap.TypeShort,
	}),
}

var gridFields = Fields{
	"start.year":   dmap.TypeShort,
	"start.month":  dmap.TypeShort,
	"start.day":    dmap.TypeShort,
	"start.hour":   dmap.TypeShort,
	"start.minute": dmap.TypeShort,
	"start.second": dmap.TypeDouble,
	"end.year":     dmap.TypeShort,
	"end.month":    dmap.TypeShort,
	"end.day":      dmap.TypeShort,
	"end.hour":     dmap.TypeShort,
	"end.minute":   dmap.TypeShort,
	"end.second":   dmap.TypeDouble,
	"stid":         dmap.TypeShort,
	"channel":      dmap.TypeShort,
	"nvec":         dmap.TypeShort,
	"freq":         dmap.TypeFloat,
	"major.revision": dmap.TypeShort,
	"minor.revision": dmap.TypeShort,
	"program.id":     dmap.TypeShort,
	"noise.mean":     dmap.TypeFloat,
	"noise.sd":       dmap.TypeFloat,
	"gsct":           dmap.TypeShort,
	"v.min":          dmap.TypeFloat,
	"v.max":          dmap.TypeFloat,
	"p.min":          dmap.TypeFloat,
	"p.max":          dmap.TypeFloat,
	"w.min":          dmap.TypeFloat,
	"w.max":          dmap.TypeFloat,
	"ve.min":         dmap.TypeFloat,
	"ve.max":         dmap.TypeFloat,
	"vector.mlat":    dmap.TypeFloat,
	"vector.mlon":    dmap.TypeFloat,
	"vector.kvect":   dmap.TypeFloat,
	"vector.stid":    dmap.TypeShort,
	"vector.channel": dmap.TypeShort,
	"vector.index":   dmap.TypeInt,
	"vector.vel.median": dmap.TypeFloat,
	"vector.vel.sd":     dmap.TypeFloat,
}

// gridExtFields are present when the grid was produced with the -ext
// command line option.
var gridExtFields = Fields{
	"vector.pwr.median": dmap.TypeFloat,
	"vector.pwr.sd":     dmap.TypeFloat,
	"vector.wdt.median": dmap.TypeFloat,
	"vector.wdt.sd":     dmap.TypeFloat,
}

// Grid is the GRID (gridded velocity vector) schema.
var Grid = Schema{
	Name:     "grid",
	Required: gridFields,
	Optional: []Fields{gridExtFields},
}

// Map is the MAP (convection map) schema. The optional groups cover the
// map_addfit, map_addmodel and map_addhmb processing stages.
var Map = Schema{
	Name: "map",
	Required: merge(gridFields, Fields{
		"map.major.revision": dmap.TypeShort,
		"map.minor.revision": dmap.TypeShort,
		"doping.level":       dmap.TypeShort,
		"model.wt":           dmap.TypeShort,
		"error.wt":           dmap.TypeShort,
		"IMF.flag":           dmap.TypeShort,
		"hemisphere":         dmap.TypeShort,
		"fit.order":          dmap.TypeShort,
		"latmin":             dmap.TypeFloat,
		"chi.sqr":            dmap.TypeDouble,
		"chi.sqr.dat":        dmap.TypeDouble,
		"rms.err":            dmap.TypeDouble,
		"lon.shft":           dmap.TypeFloat,
		"lat.shft":           dmap.TypeFloat,
		"mlt.start":          dmap.TypeDouble,
		"mlt.end":            dmap.TypeDouble,
		"mlt.av":             dmap.TypeDouble,
		"pot.drop":           dmap.TypeDouble,
		"pot.drop.err":       dmap.TypeDouble,
		"pot.max":            dmap.TypeDouble,
		"pot.max.err":        dmap.TypeDouble,
		"pot.min":            dmap.TypeDouble,
		"pot.min.err":        dmap.TypeDouble,
	}),
	Optional: []Fields{
		gridExtFields,
		{
			"source":    dmap.TypeString,
			"N":         dmap.TypeDouble,
			"N+1":       dmap.TypeDouble,
			"N+2":       dmap.TypeDouble,
			"N+3":       dmap.TypeDouble,
			"chi.sqr.n": dmap.TypeDouble,
		},
		{
			"IMF.delay":   dmap.TypeShort,
			"IMF.Bx":      dmap.TypeDouble,
			"IMF.By":      dmap.TypeDouble,
			"IMF.Bz":      dmap.TypeDouble,
			"model.angle": dmap.TypeString,
			"model.level": dmap.TypeString,
		},
		{
			"hmb.npnt":      dmap.TypeShort,
			"boundary.mlat": dmap.TypeFloat,
			"boundary.mlon": dmap.TypeFloat,
		},
	},
}
