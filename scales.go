package bars

// Scales holds the scales of one chart. Group is only set in grouped
// modes.
type Scales struct {
	X     Scaler
	Y     Scaler
	Group Scaler
	Color ColorScale
}

// Area is the size of the drawing surface the scales are ranged over.
type Area struct {
	Width  float64
	Height float64
}

// SelectScales issues the scale requests matching the chart mode in cfg.
// A chart without mode gets no positional scale.
func SelectScales(ds Dataset, cfg Config, area Area, factory ScaleFactory) (Scales, error) {
	if factory == nil {
		factory = DefaultFactory
	}
	var (
		sc  Scales
		err error
	)
	sc.Color = selectColors(cfg)

	xaxis := func(cols []string, role Role, rg Range) ScaleConfig {
		return axisRequest(cfg.XAxis, cols, role, rg)
	}
	yaxis := func(cols []string, role Role, rg Range) ScaleConfig {
		return axisRequest(cfg.YAxis, cols, role, rg)
	}

	switch cfg.Mode() {
	case ModePlain:
		if sc.X, err = factory.Generate(ds, xaxis([]string{cfg.X}, RoleNone, NewRange(0, area.Width))); err != nil {
			return sc, err
		}
		if sc.Y, err = factory.Generate(ds, yaxis([]string{cfg.Y}, RoleNone, NewRange(area.Height, 0))); err != nil {
			return sc, err
		}
	case ModeGroupByX:
		if sc.X, err = factory.Generate(ds, xaxis([]string{cfg.X}, RoleGroupParent, NewRange(0, area.Width))); err != nil {
			return sc, err
		}
		bw, ok := bandwidth(sc.X)
		if !ok {
			return sc, ErrNotBanded
		}
		if sc.Group, err = factory.Generate(ds, childrenRequest(cfg, bw)); err != nil {
			return sc, err
		}
		if sc.Y, err = factory.Generate(ds, yaxis(cfg.GroupBy, RoleGroupData, NewRange(area.Height, 0))); err != nil {
			return sc, err
		}
	case ModeGroupByY:
		if sc.Y, err = factory.Generate(ds, yaxis([]string{cfg.Y}, RoleGroupParent, NewRange(0, area.Height))); err != nil {
			return sc, err
		}
		bw, ok := bandwidth(sc.Y)
		if !ok {
			return sc, ErrNotBanded
		}
		if sc.Group, err = factory.Generate(ds, childrenRequest(cfg, bw)); err != nil {
			return sc, err
		}
		if sc.X, err = factory.Generate(ds, xaxis(cfg.GroupBy, RoleGroupData, NewRange(0, area.Width))); err != nil {
			return sc, err
		}
	case ModeStackByX:
		if sc.X, err = factory.Generate(ds, xaxis([]string{cfg.X}, RoleStackParent, NewRange(0, area.Width))); err != nil {
			return sc, err
		}
		if sc.Y, err = factory.Generate(ds, yaxis(nil, RoleStackData, NewRange(area.Height, 0))); err != nil {
			return sc, err
		}
	case ModeStackByY:
		if sc.X, err = factory.Generate(ds, xaxis(nil, RoleStackData, NewRange(0, area.Width))); err != nil {
			return sc, err
		}
		if sc.Y, err = factory.Generate(ds, yaxis([]string{cfg.Y}, RoleStackParent, NewRange(area.Height, 0))); err != nil {
			return sc, err
		}
	}
	return sc, nil
}

func axisRequest(axis AxisConfig, cols []string, role Role, rg Range) ScaleConfig {
	return ScaleConfig{
		Columns: cols,
		Type:    axis.Scale,
		Role:    role,
		Range:   rg,
		MinZero: axis.MinZero,
		Domains: axis.Domains,
		Padding: axis.Padding,
	}
}

func childrenRequest(cfg Config, width float64) ScaleConfig {
	return ScaleConfig{
		Columns: cfg.GroupBy,
		Type:    ScaleBand,
		Role:    RoleGroupChildren,
		Range:   NewRange(0, width),
	}
}

func selectColors(cfg Config) ColorScale {
	if cfg.ColorScale != nil {
		return cfg.ColorScale
	}
	return NewOrdinal(cfg.Colors)
}
