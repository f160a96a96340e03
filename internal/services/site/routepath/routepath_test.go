package routepath

import "testing"

func TestTopLevelRouteConstants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		got  string
		want string
	}{
		{Root, "/"},
		{About, "/about"},
		{Portfolio, "/portfolio"},
		{Contact, "/contact"},
		{Health, "/up"},
		{Blog, "/blog"},
		{SendEmail, "/api/send-email"},
		{ServicesPrefix, "/services/"},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Fatalf("route = %q, want %q", tc.got, tc.want)
		}
	}
}

func TestBlogRouteBuilders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "post", got: BlogPost("hello-world"), want: "/blog/hello-world"},
		{name: "post escapes", got: BlogPost(" a/b "), want: "/blog/a%2Fb"},
		{name: "default listing", got: BlogSearch("", "All"), want: "/blog"},
		{name: "query only", got: BlogSearch("go web", ""), want: "/blog?q=go+web"},
		{name: "query and category", got: BlogSearch("go", "Tech & Tools"), want: "/blog?category=Tech+%26+Tools&q=go"},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Fatalf("%s = %q, want %q", tc.name, tc.got, tc.want)
		}
	}
}

func TestPortfolioAndServiceBuilders(t *testing.T) {
	t.Parallel()

	if got := PortfolioCategory("all"); got != "/portfolio" {
		t.Fatalf("PortfolioCategory(all) = %q", got)
	}
	if got := PortfolioCategory("backend"); got != "/portfolio?category=backend" {
		t.Fatalf("PortfolioCategory(backend) = %q", got)
	}
	if got := Service("ui-ux-design"); got != "/services/ui-ux-design" {
		t.Fatalf("Service() = %q", got)
	}
}

func TestEscapeSegmentTrimsWhitespace(t *testing.T) {
	t.Parallel()

	if got := escapeSegment("  hello world  "); got != "hello%20world" {
		t.Fatalf("escapeSegment() = %q, want %q", got, "hello%20world")
	}
}
