// Licensed to the LF AI & Data foundation under one
// or more contributor license agreements. See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership. The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License. You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// zeusNamespace 是当前项目所有 Prometheus 指标使用的命名空间。
	zeusNamespace = "zeus"

	serializerSubsystem = "serializer"

	// 以下为当前使用的通用标签名。
	statusLabelName = "status"
	reasonLabelName = "reason"
	schemaLabelName = "schema"

	SuccessLabel = "success"
	FailLabel    = "fail"

	// OmitUnbound 表示 getter 所需的上下文参数不完整。
	OmitUnbound = "unbound"
	// OmitTypeMismatch 表示资源类型与成员访问器不匹配。
	OmitTypeMismatch = "type_mismatch"
)

var (
	// buckets 为序列化耗时直方图的桶划分，单位为毫秒。
	// 实际桶分布为：[0.0625 0.125 0.25 ... 512]
	buckets = prometheus.ExponentialBuckets(0.0625, 2, 14)

	SerializeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: zeusNamespace,
			Subsystem: serializerSubsystem,
			Name:      "serialize_total",
			Help:      "顶层序列化调用次数",
		}, []string{statusLabelName})

	SerializeLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: zeusNamespace,
			Subsystem: serializerSubsystem,
			Name:      "serialize_latency",
			Help:      "顶层序列化调用耗时（毫秒）",
			Buckets:   buckets,
		}, []string{statusLabelName})

	MemberOmittedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: zeusNamespace,
			Subsystem: serializerSubsystem,
			Name:      "member_omitted_total",
			Help:      "因上下文不完整或类型不匹配而被跳过的成员数量",
		}, []string{schemaLabelName, reasonLabelName})

	BatchPending = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: zeusNamespace,
		Subsystem: serializerSubsystem,
		Name:      "batch_pending",
		Help:      "批量序列化中尚未完成的资源数量",
	})

	registerOnce     sync.Once
	metricRegisterer prometheus.Registerer
)

// GetRegisterer 返回全局 Prometheus Registerer。
// 如果尚未通过 Register 显式设置，则返回 prometheus.DefaultRegisterer。
func GetRegisterer() prometheus.Registerer {
	if metricRegisterer == nil {
		return prometheus.DefaultRegisterer
	}
	return metricRegisterer
}

// Register 注册当前定义的所有指标，多次调用只生效一次。
func Register(r prometheus.Registerer) {
	registerOnce.Do(func() {
		r.MustRegister(SerializeTotal)
		r.MustRegister(SerializeLatency)
		r.MustRegister(MemberOmittedTotal)
		r.MustRegister(BatchPending)
		metricRegisterer = r
	})
}
