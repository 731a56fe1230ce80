// Package loader provides the plugin-like feature loading system.
//
// Each feature implements the Feature interface and registers its own routes.
// Features that are not configured (for example reports without object
// storage) report IsEnabled() == false and are skipped.
//
//	mgr := loader.NewManager()
//	mgr.Register(releases.NewFeature(svc, logg))
//	if err := mgr.LoadAll(app); err != nil {
//	    return err
//	}
package loader
