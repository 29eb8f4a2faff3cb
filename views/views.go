package views

import "github.com/rfxvisual/reelsite"

// Funcs returns the full set of view constructors for the app.
func Funcs() reelsite.ViewFuncs {
	return reelsite.ViewFuncs{
		Home:             Home,
		HomePartial:      HomePartial,
		Portfolio:        Portfolio,
		PortfolioPartial: PortfolioPartial,
		GallerySection:   GallerySection,
		ItemDetail:       ItemDetail,
		Contact:          Contact,
		ContactPartial:   ContactPartial,
		BrainstormReply:  BrainstormReply,
		AdminLogin:       AdminLogin,
		AdminDashboard:   AdminDashboard,
		AdminItemForm:    AdminItemForm,
		AdminImages:      AdminImages,
		NotFound:         NotFound,
		ServerError:      ServerError,
	}
}
