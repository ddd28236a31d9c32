package response

import (
	"time"

	"kilo-share/internal/pkg/errs"

	"github.com/jinzhu/copier"
)

const dateLayout = "2006-01-02"

// Departure dates leave the API as calendar dates; every other timestamp
// keeps its full time.Time form.
var copyOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: time.Time{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				t, ok := src.(time.Time)
				if !ok {
					return nil, errs.New("expected time.Time")
				}
				return t.Format(dateLayout), nil
			},
		},
	},
}

func copyFrom(dst, src any) error {
	if err := copier.CopyWithOption(dst, src, copyOption); err != nil {
		return errs.Wrap(err, "map response")
	}
	return nil
}
