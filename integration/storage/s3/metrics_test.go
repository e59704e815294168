package s3_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/objstore/integration/storage/s3"
)

func TestMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m, err := s3.NewMetrics(reg)
	require.NoError(t, err)

	fake := newFakeS3(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = fmt.Fprint(w, listLastPage)
	})
	client := fake.client(t, "media", s3.WithObserver(m))
	ctx := context.Background()

	_, err = client.ListObjects(ctx, testTenant, s3.ListObjectsInput{})
	require.NoError(t, err)
	_, err = client.ListObjects(ctx, testTenant, s3.ListObjectsInput{})
	require.NoError(t, err)
	require.Error(t, client.DeleteObject(ctx, testTenant, "k"))
	_, err = client.GenerateSignedURL(ctx, testTenant, "k", http.MethodGet, nil)
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(reg, "objstore_s3_ops_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	families, err := reg.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			key := mf.GetName()
			for _, l := range metric.GetLabel() {
				key += "," + l.GetName() + "=" + l.GetValue()
			}
			switch {
			case metric.GetCounter() != nil:
				values[key] = metric.GetCounter().GetValue()
			case metric.GetHistogram() != nil:
				values[key] = float64(metric.GetHistogram().GetSampleCount())
			}
		}
	}

	assert.Equal(t, 2.0, values["objstore_s3_ops_total,op=list_objects,result=ok"])
	assert.Equal(t, 1.0, values["objstore_s3_ops_total,op=delete_object,result=error"])
	assert.Equal(t, 1.0, values["objstore_s3_ops_total,op=presign,result=ok"])
	assert.Equal(t, 2.0, values["objstore_s3_responses_total,op=list_objects,status=200"])
	assert.Equal(t, 1.0, values["objstore_s3_responses_total,op=delete_object,status=403"])
	assert.Equal(t, 2.0, values["objstore_s3_op_duration_seconds,op=list_objects"])

	_, err = s3.NewMetrics(reg)
	assert.Error(t, err, "duplicate registration")
}
