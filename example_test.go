package xmlrev_test

import (
	"fmt"
	"os"

	"github.com/signadot/xmlrev"
	"github.com/signadot/xmlrev/libdiff"
	"github.com/signadot/xmlrev/parse"
)

func ExampleCompare() {
	from, err := parse.Parse([]byte(`<a><b>1</b></a>`))
	if err != nil {
		panic(err)
	}
	// the store keeps identities, so b and its text pair by identity
	to, err := parse.Parse([]byte(`<a><b>2</b></a>`))
	if err != nil {
		panic(err)
	}
	d, err := xmlrev.Compare(from, to)
	if err != nil {
		panic(err)
	}
	meta := libdiff.Metadata{
		Document:  "/db/a.xml",
		Revision:  "2",
		Timestamp: "2024-05-01T00:00:00Z",
		Principal: "admin",
	}
	if err := xmlrev.SerializeTo(d, meta, os.Stdout); err != nil {
		panic(err)
	}
	// Output:
	// <xr:diff xmlns:xr="urn:xmlrev:diff">
	//   <xr:properties>
	//     <xr:document>/db/a.xml</xr:document>
	//     <xr:revision>2</xr:revision>
	//     <xr:date>2024-05-01T00:00:00Z</xr:date>
	//     <xr:user>admin</xr:user>
	//   </xr:properties>
	//   <xr:update-text node="1.1.1">
	//     <xr:old>1</xr:old>
	//     <xr:new>2</xr:new>
	//   </xr:update-text>
	// </xr:diff>
}

func ExampleApply() {
	base, err := parse.Parse([]byte(`<a><b/><c/></a>`))
	if err != nil {
		panic(err)
	}
	d := &libdiff.Document{Ops: []libdiff.Op{
		&libdiff.Move{Node: "1.2", From: "1", To: "1.1", Position: 0},
	}}
	res, err := xmlrev.Apply(base, d)
	if err != nil {
		panic(err)
	}
	fmt.Println(res.Node("1.2").Parent())
	// Output:
	// 1.1
}
