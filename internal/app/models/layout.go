package models

import "github.com/a-h/templ"

type NavItem struct {
	Name string
	URL  string
}

type Navigation struct {
	Items []NavItem
}

// LayoutData carries everything the page shell needs: the signed-in user (nil
// when anonymous), the navigation fitting their role, and the page content.
type LayoutData struct {
	Title     string
	User      *User
	Nav       Navigation
	ActiveNav string
	Content   templ.Component
}

var MainNav = Navigation{
	Items: []NavItem{
		{Name: "Diary", URL: "/diary"},
		{Name: "Account", URL: "/account"},
	},
}

var AdminNav = Navigation{
	Items: []NavItem{
		{Name: "Diary", URL: "/diary"},
		{Name: "Invites", URL: "/invites"},
		{Name: "Account", URL: "/account"},
	},
}

var OfflineNav = Navigation{
	Items: []NavItem{
		{Name: "Sign in", URL: "/login"},
		{Name: "Register", URL: "/register"},
	},
}
